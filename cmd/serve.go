package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-reporter/internal/counts"
	"github.com/sells-group/outreach-reporter/internal/report"
	"github.com/sells-group/outreach-reporter/pkg/slack"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Slack webhook server and daily report scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runner, store, err := buildRunner()
		if err != nil {
			return err
		}
		defer store.Close()

		srv := &slashServer{
			secret:  cfg.Slack.SigningSecret,
			store:   store,
			runner:  runner,
			channel: cfg.Slack.ReportChannel,
			now:     time.Now,
		}

		// One fire at a time: a still-running report suppresses the next.
		scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{})))
		schedule := fmt.Sprintf("%d %d * * *", cfg.Report.Minute, cfg.Report.Hour)
		if _, err := scheduler.AddFunc(schedule, func() {
			if _, err := runner.Run(context.Background()); err != nil {
				zap.L().Error("scheduled report failed", zap.Error(err))
			}
		}); err != nil {
			return eris.Wrap(err, "schedule daily report")
		}
		scheduler.Start()
		defer scheduler.Stop()
		zap.L().Info("scheduler started",
			zap.Int("hour", cfg.Report.Hour), zap.Int("minute", cfg.Report.Minute))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.routes(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			drainServer(httpSrv)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// drainTimeout bounds graceful shutdown once the stop signal arrives.
const drainTimeout = 10 * time.Second

// drainServer shuts the server down on a fresh deadline so in-flight
// requests finish; the signal context is already canceled by the time the
// stop path runs.
func drainServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...any) {
	zap.S().Infow(msg, kv...)
}

func (cronLogger) Error(err error, msg string, kv ...any) {
	zap.S().Errorw(msg, append(kv, "error", err)...)
}

// slashServer handles Slack slash commands and the manual report trigger.
type slashServer struct {
	secret  string
	store   counts.Store
	runner  *report.Runner
	channel string
	now     func() time.Time
}

func (s *slashServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Post("/slack/commands/log-social", s.handleLogSocial)
	r.Post("/slack/trigger-report", s.handleTrigger)

	return r
}

// verify reads the body and checks the Slack request signature. On failure
// it writes a 403 and returns ok=false.
func (s *slashServer) verify(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "cannot read request body", http.StatusBadRequest)
		return nil, false
	}

	ts := r.Header.Get("X-Slack-Request-Timestamp")
	sig := r.Header.Get("X-Slack-Signature")
	if err := slack.VerifySignature(s.secret, ts, sig, body, s.now()); err != nil {
		zap.L().Warn("slack request rejected", zap.Error(err))
		http.Error(w, "invalid request signature", http.StatusForbidden)
		return nil, false
	}

	return body, true
}

// reply writes a plain-text slash command response. Slack shows whatever
// comes back with a 200 to the invoking user.
func reply(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, text)
}

const logSocialUsage = "Usage: `/log-social <channel> <count>`  e.g. `/log-social telegram 3`"

// handleLogSocial implements the /log-social slash command:
//
//	/log-social              show today's manual counts
//	/log-social telegram 3   set today's Telegram count to 3
func (s *slashServer) handleLogSocial(w http.ResponseWriter, r *http.Request) {
	body, ok := s.verify(w, r)
	if !ok {
		return
	}

	params, err := url.ParseQuery(string(body))
	if err != nil {
		reply(w, logSocialUsage)
		return
	}
	text := strings.TrimSpace(params.Get("text"))
	date := s.now().UTC().Format("2006-01-02")

	if text == "" {
		rec, err := s.store.Get(r.Context(), date)
		if err != nil {
			zap.L().Error("manual counts read failed", zap.Error(err))
			reply(w, "Could not read today's counts, try again shortly.")
			return
		}
		reply(w, fmt.Sprintf(
			"📋 *Today's manual counts:*\n  Telegram: `%d`\n  Signal:   `%d`\n  LinkedIn: `%d`\n\n_Use `/log-social telegram 3` to update._",
			rec.Telegram, rec.Signal, rec.LinkedIn))
		return
	}

	fields := strings.Fields(text)
	if len(fields) != 2 {
		reply(w, logSocialUsage)
		return
	}

	channel := strings.ToLower(fields[0])
	if !counts.ValidChannel(channel) {
		reply(w, fmt.Sprintf("Unknown channel `%s`. Valid: telegram, signal, linkedin", channel))
		return
	}

	value, err := strconv.Atoi(fields[1])
	if err != nil || value < 0 {
		reply(w, fmt.Sprintf("`%s` is not a valid non-negative integer.", fields[1]))
		return
	}

	if err := s.store.Set(r.Context(), date, channel, value); err != nil {
		zap.L().Error("manual count save failed", zap.Error(err))
		reply(w, "Could not save the count, try again shortly.")
		return
	}

	reply(w, fmt.Sprintf("✅ Logged `%d` %s contacts for today.", value, channel))
}

// handleTrigger runs the daily report in the background and acknowledges
// immediately; Slack expects slash responses within three seconds.
func (s *slashServer) handleTrigger(w http.ResponseWriter, r *http.Request) {
	body, ok := s.verify(w, r)
	if !ok {
		return
	}

	params, _ := url.ParseQuery(string(body))
	user := params.Get("user_id")
	channel := params.Get("channel_id")

	go func() {
		if _, err := s.runner.Run(context.Background()); err != nil {
			zap.L().Error("triggered report failed", zap.Error(err))
			if s.runner.Slack != nil && user != "" && channel != "" {
				if err := s.runner.Slack.PostEphemeral(context.Background(), channel, user,
					"Report run hit a publishing error, check the service logs."); err != nil {
					zap.L().Warn("ephemeral notice failed", zap.Error(err))
				}
			}
		}
	}()

	reply(w, fmt.Sprintf("⏳ Running report now — results in %s shortly.", s.channel))
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
