package services

import "github.com/askhat/football-analysis/models"

// Catalog fixtures, loaded on first start so the tool is usable
// without an upstream data provider.

var fixturePositions = []models.Position{
	{ID: 1, Name: "Goalkeeper"},
	{ID: 2, Name: "Defender"},
	{ID: 3, Name: "Midfielder"},
	{ID: 4, Name: "Forward"},
}

var fixtureLeagues = []models.League{
	{Name: "Premier League", Country: "England", Season: "2024-25"},
	{Name: "La Liga", Country: "Spain", Season: "2024-25"},
	{Name: "Serie A", Country: "Italy", Season: "2024-25"},
	{Name: "Bundesliga", Country: "Germany", Season: "2024-25"},
}

// Keyed by league name; team ids are assigned at insert time.
var fixtureTeams = map[string][]models.Team{
	"Premier League": {
		{Name: "Manchester United", City: "Manchester", Founded: 1878, Stadium: "Old Trafford"},
		{Name: "Liverpool FC", City: "Liverpool", Founded: 1892, Stadium: "Anfield"},
		{Name: "Arsenal FC", City: "London", Founded: 1886, Stadium: "Emirates Stadium"},
		{Name: "Chelsea FC", City: "London", Founded: 1905, Stadium: "Stamford Bridge"},
	},
	"La Liga": {
		{Name: "Real Madrid", City: "Madrid", Founded: 1902, Stadium: "Santiago Bernabéu"},
		{Name: "FC Barcelona", City: "Barcelona", Founded: 1899, Stadium: "Camp Nou"},
	},
}

// Keyed by team name.
var fixturePlayers = map[string][]models.Player{
	"Manchester United": {
		{Name: "Marcus Rashford", PositionID: 4, JerseyNumber: 10, Age: 27},
		{Name: "Bruno Fernandes", PositionID: 3, JerseyNumber: 8, Age: 30},
		{Name: "Harry Maguire", PositionID: 2, JerseyNumber: 5, Age: 31},
		{Name: "Andre Onana", PositionID: 1, JerseyNumber: 24, Age: 28},
		{Name: "Casemiro", PositionID: 3, JerseyNumber: 18, Age: 32},
		{Name: "Antony", PositionID: 4, JerseyNumber: 21, Age: 24},
		{Name: "Luke Shaw", PositionID: 2, JerseyNumber: 23, Age: 29},
		{Name: "Jadon Sancho", PositionID: 4, JerseyNumber: 25, Age: 24},
		{Name: "Raphael Varane", PositionID: 2, JerseyNumber: 19, Age: 31},
		{Name: "Mason Mount", PositionID: 3, JerseyNumber: 7, Age: 26},
		{Name: "Diogo Dalot", PositionID: 2, JerseyNumber: 20, Age: 25},
	},
}
