package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adventcal/internal/config"
	"adventcal/internal/model"
	"adventcal/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewDayConfigRepo(client.Database(cfg.MongoDB))

	for _, dc := range sampleDays() {
		if err := repo.Upsert(ctx, dc); err != nil {
			log.Fatalf("Failed to seed day %d: %v", dc.Day, err)
		}
		log.Printf("Seeded day %2d: %-14s (%s)", dc.Day, dc.Title, dc.Config.Type)
	}
	log.Println("Done")
}

func sampleDays() []*model.DayConfig {
	return []*model.DayConfig{
		{
			Day:   1,
			Title: "Christmas Movie Quiz",
			Config: model.GameConfig{
				Type:             model.GameQuiz,
				RoundTimeLimitMS: 15000,
				Scoring:          model.ScoringParams{BasePoints: 1, TimeBonusRate: 1, MaxBonus: 1},
				Rounds: []model.Round{
					{
						Prompt:  "In which movie does Kevin defend his home alone?",
						Options: []string{"Home Alone", "Elf", "The Grinch", "Gremlins"},
						Answer:  "Home Alone",
					},
					{
						Prompt:  "What is the name of the Grinch's dog?",
						Options: []string{"Rex", "Max", "Buddy", "Comet"},
						Answer:  "Max",
					},
					{
						Prompt:  "Which country does Buddy the Elf travel to?",
						Options: []string{"Canada", "Norway", "USA", "Finland"},
						Answer:  "USA",
					},
				},
			},
		},
		{
			Day:   2,
			Title: "Word Scramble",
			Config: model.GameConfig{
				Type:             model.GameWordScramble,
				RoundTimeLimitMS: 10000,
				Scoring:          model.ScoringParams{BasePoints: 1, TimeBonusRate: 1, MaxBonus: 1},
				Rounds: []model.Round{
					{Prompt: "ELTINS", Answer: "tinsel"},
					{Prompt: "HLEGSI", Answer: "sleigh"},
					{Prompt: "DRANGEL", Answer: "garland"},
					{Prompt: "TLMISETOE", Answer: "mistletoe"},
					{Prompt: "GNOGEG", Answer: "eggnog"},
				},
			},
		},
		{
			Day:   3,
			Title: "Elf Interview",
			Config: model.GameConfig{
				Type:             model.GameInterview,
				RoundTimeLimitMS: 20000,
				Scoring:          model.ScoringParams{BasePoints: 1, TimeBonusRate: 1, MaxBonus: 1},
				Rounds: []model.Round{
					{
						Prompt:  "How many reindeer pull Santa's sleigh (including Rudolph)?",
						Options: []string{"8", "9", "10", "12"},
						Answer:  "9",
					},
					{
						Prompt:  "What do elves traditionally make?",
						Options: []string{"Cookies", "Toys", "Snow", "Cards"},
						Answer:  "Toys",
					},
					{
						Prompt:  "Where does Santa live?",
						Options: []string{"South Pole", "Lapland", "North Pole", "Greenland"},
						Answer:  "North Pole",
					},
				},
			},
		},
		{
			Day:   4,
			Title: "Emoji Carols",
			Config: model.GameConfig{
				Type:             model.GameEmojiQuiz,
				RoundTimeLimitMS: 20000,
				Scoring:          model.ScoringParams{BasePoints: 1, TimeBonusRate: 1, MaxBonus: 1},
				Rounds: []model.Round{
					{Prompt: "🔔🔔🔔", Answer: "jingle bells"},
					{Prompt: "🌙🤫🎶", Answer: "silent night"},
					{Prompt: "❄️☃️🎩", Answer: "frosty the snowman"},
				},
			},
		},
		{
			Day:   5,
			Title: "Match the Pairs",
			Config: model.GameConfig{
				Type:             model.GameMatchPair,
				RoundTimeLimitMS: 30000,
				Scoring:          model.ScoringParams{BasePoints: 1, TimeBonusRate: 1, MaxBonus: 1},
				Rounds: []model.Round{
					{PairLeft: "Rudolph", PairRight: "Red Nose"},
					{PairLeft: "Santa", PairRight: "Sleigh"},
					{PairLeft: "Elf", PairRight: "Workshop"},
					{PairLeft: "Snowman", PairRight: "Carrot"},
				},
			},
		},
		{
			Day:   6,
			Title: "Guess the Song",
			Config: model.GameConfig{
				Type:             model.GameSongGuess,
				RoundTimeLimitMS: 15000,
				Scoring:          model.ScoringParams{BasePoints: 1, TimeBonusRate: 1, MaxBonus: 1},
				Rounds: []model.Round{
					{
						Prompt:  "\"Last Christmas I gave you my heart...\"",
						Options: []string{"Wham!", "Mariah Carey", "ABBA", "Queen"},
						Answer:  "Wham!",
					},
					{
						Prompt:  "\"All I want for Christmas is...\"",
						Options: []string{"Snow", "You", "Peace", "Gifts"},
						Answer:  "You",
					},
				},
			},
		},
	}
}
