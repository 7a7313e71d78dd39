// meta/meta.go
package meta

import "time"

// ThinkTime is how long the bot searches per move.
const ThinkTime = 750 * time.Millisecond

// Port the game server listens on.
const Port = 8080

// GamesPerMatchup is the number of games per experiment matchup.
const GamesPerMatchup = 20

// MaxConcurrentGames bounds the experiment games played at once.
const MaxConcurrentGames = 8

// ExperimentTimeBudget is the think time of experiment agents.
const ExperimentTimeBudget = 10 * time.Millisecond
