package main

import (
	"log"
	"os"

	"foxvalley/cmd"
	"foxvalley/internal/app"
	"foxvalley/internal/logger"
	"foxvalley/internal/util"
)

func main() {
	lg := logger.New()
	lg.Infow("starting foxvalley api", "commitHash", os.Getenv("commit_hash"))

	cfg, err := util.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	deps, err := cmd.InitializeDependencies(*cfg)
	if err != nil {
		log.Fatal(err)
	}

	scheduler, err := app.NewScheduler(cfg.Timezone, lg)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.BriefSchedule != "" {
		err = scheduler.AddJob(cfg.BriefSchedule, app.NewWeeklyBriefJob(deps.WeeklyBriefApp))
		if err != nil {
			log.Fatal(err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	err = deps.ApiHandler.StartApi(cfg.Port)
	if err != nil {
		log.Fatal(err)
	}
}
