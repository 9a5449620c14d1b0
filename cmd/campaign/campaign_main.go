package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"NapoleonCampaign/internal/campaign/interfaces"
	"NapoleonCampaign/internal/shared/config"
	"NapoleonCampaign/internal/shared/gameconfig/condition"
	"NapoleonCampaign/internal/shared/gameconfig/event"
	"NapoleonCampaign/internal/shared/gameconfig/nation"
	"NapoleonCampaign/internal/shared/gameconfig/roguelike"
	"NapoleonCampaign/internal/shared/logs"
	"NapoleonCampaign/modules/kit/logx"
)

func main() {
	configPath := flag.String("config", "", "path to conf.yml (default: search configs/conf.yml upward)")
	seed := flag.Uint64("seed", 0, "random seed, 0 means time based")
	flag.Parse()

	boot, err := config.ParseBootstrap()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	path := *configPath
	if path == "" {
		path = boot.ConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := boot.Apply(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *seed != 0 {
		cfg.Campaign.Seed = *seed
	}

	if err := logs.Init("napoleon", cfg.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("conf", cfg))

	config.OnReload = func(next *config.Config) {
		logs.Info("config reloaded",
			zap.Float64("random_event_chance", next.Campaign.RandomEventChance),
			zap.Bool("autosave", next.Campaign.Autosave),
		)
	}

	// 内容表有问题直接 panic，不要等到玩到一半才发现。
	event.Load()
	roguelike.Load()
	condition.Load()
	nation.Load()
	logs.Info("content loaded", zap.Int("events", event.Count()), zap.Int("random_events", len(roguelike.RandomEvents())))

	rngSeed := cfg.Campaign.Seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}
	logs.Info("campaign seed", zap.Uint64("seed", rngSeed))

	module, err := interfaces.New(cfg, logx.NewZapLogger(logs.L()), rand.New(rand.NewSource(rngSeed)))
	if err != nil {
		logs.Error("open save storage failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "cannot open save storage:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := module.NewCLI(os.Stdin, os.Stdout).Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := module.Close(closeCtx); err != nil {
		logs.Warn("close save storage failed", zap.Error(err))
	}
	if runErr != nil {
		logs.Error("campaign exited with error", zap.Error(runErr))
		os.Exit(1)
	}
	logs.Info("campaign exited")
}
