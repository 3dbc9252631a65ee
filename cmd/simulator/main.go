// Command simulator wires the full engine together and drives it with
// simulated traffic. It is the reference composition for API-layer
// integrations: catalog + fairness + outcome generation, behavior tracking,
// fraud screening, and the odds/analytics queries.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/luckcraft/wagercore/internal/config"
	"github.com/luckcraft/wagercore/internal/logging"
	"github.com/luckcraft/wagercore/pkg/catalog"
	"github.com/luckcraft/wagercore/pkg/clock"
	"github.com/luckcraft/wagercore/pkg/entities"
	"github.com/luckcraft/wagercore/pkg/random"
	behaviorRepo "github.com/luckcraft/wagercore/pkg/repositories/behavior"
	patternRepo "github.com/luckcraft/wagercore/pkg/repositories/pattern"
	"github.com/luckcraft/wagercore/pkg/scheduler"
	"github.com/luckcraft/wagercore/pkg/services/analytics"
	"github.com/luckcraft/wagercore/pkg/services/behavior"
	"github.com/luckcraft/wagercore/pkg/services/difficulty"
	"github.com/luckcraft/wagercore/pkg/services/fairness"
	"github.com/luckcraft/wagercore/pkg/services/fraud"
	"github.com/luckcraft/wagercore/pkg/services/odds"
	"github.com/luckcraft/wagercore/pkg/services/outcome"
)

func main() {
	bets := flag.Int("bets", 1000, "number of simulated bets")
	players := flag.Int("players", 10, "number of simulated players")
	flag.Parse()

	logger := logging.NewLogger(logging.INFO)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		logger.LogError(err)
		os.Exit(1)
	}

	patterns, err := buildPatternRepository(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize pattern store: %v", err)
		os.Exit(1)
	}
	defer patterns.Close()

	if archive, ok := patterns.(*patternRepo.ElasticsearchRepository); ok {
		maintenance := scheduler.NewArchiveMaintenance(archive)
		maintenance.Start(context.Background())
		defer maintenance.Stop()
	}

	behaviors, err := buildBehaviorStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize behavior store: %v", err)
		os.Exit(1)
	}
	defer behaviors.Close()

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := random.NewLockedSource(seed)
	clk := clock.System()

	fairnessCtrl := fairness.NewController(fairness.Config{
		TargetHouseEdge:    cfg.TargetHouseEdge,
		DriftTolerance:     0.02,
		LossStreakTrigger:  5,
		WinStreakTrigger:   3,
		LossBoost:          0.05,
		WinPenalty:         0.03,
		ProbabilityCeiling: 0.55,
		ProbabilityFloor:   0.35,
	})

	generator := outcome.NewService(cat, fairnessCtrl, patterns, source, clk)

	trackerCfg := behavior.DefaultConfig()
	trackerCfg.SessionGap = cfg.SessionGap
	trackerCfg.HighAvgBet = cfg.HighAvgBet
	trackerCfg.HighSessionLoss = cfg.HighSessionLoss
	trackerCfg.MediumAvgBet = cfg.MediumAvgBet
	trackerCfg.MediumSessionLoss = cfg.MediumSessionLoss
	tracker := behavior.NewTracker(behaviors, clk, trackerCfg)

	scorer := fraud.NewScorer(fraud.DefaultConfig(),
		fraud.NewRapidBetting(cfg.RapidBetWindow, cfg.RapidBetMax, clk),
		fraud.NewUnusualBetSize(10),
		fraud.NewPatternList(),
		fraud.NewFunc(entities.IndicatorSuspiciousDevice, nil),
	)

	oddsCfg := odds.DefaultConfig()
	oddsCfg.HouseEdge = cfg.TargetHouseEdge
	oddsCalc := odds.NewCalculator(cat, patterns, oddsCfg)

	tuner := difficulty.NewAdjuster(cat)
	reports := analytics.NewService(patterns, fairnessCtrl)

	logger.Info("Simulating %d bets across %d players (seed %d)", *bets, *players, seed)
	runSimulation(logger, simDeps{
		catalog:   cat,
		generator: generator,
		tracker:   tracker,
		scorer:    scorer,
		oddsCalc:  oddsCalc,
		tuner:     tuner,
		reports:   reports,
		source:    source,
	}, *bets, *players)
}

// loadCatalog reads the configured catalog file, falling back to the
// built-in three-game catalog
func loadCatalog(cfg *config.Config, logger *logging.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		logger.Info("Using built-in game catalog")
		return catalog.Default(), nil
	}
	logger.Info("Loading game catalog from %s", cfg.CatalogPath)
	return catalog.LoadFile(cfg.CatalogPath)
}

// buildPatternRepository picks the configured pattern store, optionally
// wrapped with the Elasticsearch outcome archive
func buildPatternRepository(cfg *config.Config, logger *logging.Logger) (patternRepo.Repository, error) {
	var repo patternRepo.Repository
	if cfg.StorageType == "sqlite" {
		logger.Info("Using SQLite pattern store at %s", cfg.SQLitePath)
		sqliteRepo, err := patternRepo.NewSQLiteRepository(cfg.SQLitePath, cfg.PatternCapacity)
		if err != nil {
			return nil, err
		}
		repo = sqliteRepo
	} else {
		logger.Info("Using in-memory pattern store (history is lost on restart)")
		repo = patternRepo.NewMemoryRepository(cfg.PatternCapacity)
	}

	if cfg.ElasticURL != "" {
		logger.Info("Archiving outcomes to Elasticsearch at %s", cfg.ElasticURL)
		esCfg := patternRepo.DefaultElasticsearchConfig()
		esCfg.URL = cfg.ElasticURL
		esCfg.Username = cfg.ElasticUsername
		esCfg.Password = cfg.ElasticPassword
		esCfg.IndexPrefix = cfg.ElasticIndexName
		esCfg.RetentionPeriod = cfg.ElasticRetention
		return patternRepo.NewElasticsearchRepository(repo, esCfg)
	}
	return repo, nil
}

// buildBehaviorStore picks the configured behavior store
func buildBehaviorStore(cfg *config.Config, logger *logging.Logger) (behaviorRepo.Store, error) {
	if cfg.StorageType == "sqlite" {
		return behaviorRepo.NewSQLiteStore(cfg.SQLitePath)
	}
	return behaviorRepo.NewMemoryStore(), nil
}

type simDeps struct {
	catalog   *catalog.Catalog
	generator *outcome.Service
	tracker   *behavior.Tracker
	scorer    *fraud.Scorer
	oddsCalc  *odds.Calculator
	tuner     *difficulty.Adjuster
	reports   *analytics.Service
	source    *random.LockedSource
}

// runSimulation pushes bets through the full per-bet control flow: track
// behavior, screen for fraud, then decide the outcome
func runSimulation(logger *logging.Logger, deps simDeps, bets, players int) {
	ctx := context.Background()
	games := deps.catalog.Games()

	streaks := make(map[string]playerStreak, players)
	var suspicious, alerts int

	for i := 0; i < bets; i++ {
		userID := fmt.Sprintf("player-%d", i%players)
		game := games[i%len(games)]
		amount := 10 + deps.source.Float64()*490

		st := streaks[userID]
		history := st.history()

		assessment := deps.scorer.Evaluate(ctx, userID, betData(game.ID, amount), history)
		if assessment.IsSuspicious {
			suspicious++
			continue
		}

		result, err := deps.generator.GenerateOutcome(ctx, game.ID, amount, history)
		if err != nil {
			logger.LogError(err)
			continue
		}

		tracked, err := deps.tracker.RecordBet(ctx, userID, behavior.BetRecord{
			Bet:    betData(game.ID, amount),
			Won:    result.Outcome.Win,
			Payout: result.Outcome.Payout,
		})
		if err != nil {
			logger.LogError(err)
			continue
		}
		if tracked.ShouldAlert {
			alerts++
		}

		streaks[userID] = st.advance(result.Outcome.Win, amount)

		if result.Fairness.Drift {
			logger.Warn("Fairness drift: win rate %.3f vs target %.3f",
				result.Fairness.PlayerWinRate, 1-result.Fairness.TargetHouseEdge)
		}
	}

	logger.Info("Done: %d suspicious bets skipped, %d responsible-gaming alerts", suspicious, alerts)

	for _, game := range games {
		report, err := deps.reports.GameAnalytics(ctx, game.ID)
		if err != nil {
			logger.LogError(err)
			continue
		}
		displayOdds, err := deps.oddsCalc.CalculateOptimalOdds(ctx, game.ID, odds.MarketConditions{})
		if err != nil {
			logger.LogError(err)
			continue
		}
		tuned, err := deps.tuner.Adjust(game.ID, 0.5, report.PlayerWinRate)
		if err != nil {
			logger.LogError(err)
			continue
		}
		logger.Info("Game %d: %d outcomes, win rate %.3f, avg bet %.2f, odds %.2f, difficulty %.2f",
			game.ID, report.TotalGames, report.PlayerWinRate, report.AverageBet, displayOdds, tuned.Difficulty)
	}
}

// betData builds the bet payload for one simulated wager
func betData(gameID int, amount float64) entities.BetData {
	return entities.BetData{GameID: gameID, Amount: amount}
}

// playerStreak tracks a simulated player's running streaks and totals
type playerStreak struct {
	wins   int
	losses int
	bets   int
	amount float64
}

func (s playerStreak) history() entities.PlayerHistory {
	h := entities.PlayerHistory{
		RecentWinStreak:  s.wins,
		RecentLossStreak: s.losses,
	}
	if s.bets > 0 {
		h.AverageBetSize = s.amount / float64(s.bets)
	}
	return h
}

func (s playerStreak) advance(won bool, amount float64) playerStreak {
	if won {
		s.wins++
		s.losses = 0
	} else {
		s.losses++
		s.wins = 0
	}
	s.bets++
	s.amount += amount
	return s
}
