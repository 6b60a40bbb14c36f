package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Pratham0741-lab/Empathy-Mirror/clients"
	cfg "github.com/Pratham0741-lab/Empathy-Mirror/config"
	"github.com/Pratham0741-lab/Empathy-Mirror/mirror"
	"github.com/Pratham0741-lab/Empathy-Mirror/orchestrator"
	"github.com/Pratham0741-lab/Empathy-Mirror/replay"
	"github.com/Pratham0741-lab/Empathy-Mirror/sentiment"
	"github.com/Pratham0741-lab/Empathy-Mirror/server"
	"github.com/Pratham0741-lab/Empathy-Mirror/sources"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "mirror",
		Short: "Live empathy mirror: fuses facial emotion and spoken sentiment",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newReplayCmd())
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the live mirror session",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := cfg.Load(*configPath)
			if err != nil {
				return err
			}

			log := logrus.New()
			if lvl, err := logrus.ParseLevel(conf.Pipeline.LogLvl); err == nil {
				log.SetLevel(lvl)
			}

			sessionID := uuid.NewString()
			entry := log.WithFields(logrus.Fields{
				"pipeline": conf.Pipeline.Name,
				"session":  sessionID,
			})
			entry.Info("mirror session starting")

			h := clients.NewHTTP(conf.HTTPTimeout())
			visual := sources.NewVisual(
				clients.NewCamera(h, conf.Services.Camera.URL),
				clients.NewFace(h, conf.Services.Face.URL),
				conf.Camera.ClassifyEvery,
			)
			speech := sources.NewSpeech(
				clients.NewSpeech(h, conf.Services.Speech.URL),
				conf.ListenTimeout(),
			)

			var scorer sentiment.Scorer = sentiment.NewLexicon()
			if url := conf.Services.Sentiment.URL; url != "" {
				scorer = clients.NewSentiment(h, url)
				entry.WithField("url", url).Info("using remote sentiment scorer")
			}

			store := mirror.NewStore(sessionID, conf.Session.HistoryLimit)
			sched := orchestrator.New(store, visual, speech, scorer, conf.FrameInterval(), conf.Audio.Calibrate, entry)
			srv := server.New(store, visual, entry.WithField("component", "server"))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				if err := srv.Run(ctx, conf.Server.Addr); err != nil {
					entry.WithError(err).Error("server stopped")
					stop()
				}
			}()
			entry.WithField("addr", conf.Server.Addr).Info("viewer surface up")

			sched.Run(ctx)
			entry.Info("mirror session ended")
			return nil
		},
	}
}

func newReplayCmd() *cobra.Command {
	var historyLimit int

	cmd := &cobra.Command{
		Use:   "replay <fixture.yaml>",
		Short: "Run a scripted session and print its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := replay.Load(args[0])
			if err != nil {
				return err
			}

			store := mirror.NewStore(uuid.NewString(), historyLimit)
			snap, err := f.Run(cmd.Context(), store, sentiment.NewLexicon())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), mirror.RenderReport(snap))
			return nil
		},
	}
	cmd.Flags().IntVar(&historyLimit, "history-limit", mirror.DefaultHistoryLimit, "max session log entries")
	return cmd
}
