package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-yoga"
	"github.com/goliatone/go-yoga/activitymap"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()

			if migrate {
				if err := rt.migrate(cmd.Context()); err != nil {
					return err
				}
			}

			srv := newServer(rt)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				rt.logger.Info("http server listening", "addr", rt.cfg.HTTPAddr)
				errCh <- srv.Serve(rt.cfg.HTTPAddr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			rt.logger.Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.GetShutdownTimeout())
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "run migrations before serving")
	return cmd
}

// newServer wires stores, services and the controller
func newServer(rt *runtime) router.Server[*fiber.App] {
	users := rt.manager.Users()
	sessions := rt.manager.Sessions()
	teachers := rt.manager.Teachers()

	sink := activityLogSink(rt.logger)

	tokens := yoga.NewTokenServiceFromConfig(rt.cfg, yoga.WithTokenLogger(rt.logger))

	auther := yoga.NewAuthenticator(users, tokens, rt.hasher()).
		WithLogger(rt.logger).
		WithActivitySink(sink)

	resolver := yoga.NewUserProvider(users, tokens).WithLogger(rt.logger)

	participation := yoga.NewParticipationStateMachine(sessions, users,
		yoga.WithStateMachineLogger(rt.logger),
		yoga.WithStateMachineActivitySink(sink),
	)

	controller := yoga.NewController(
		yoga.WithControllerLogger(rt.logger),
		yoga.WithControllerConfig(rt.cfg),
		yoga.WithAuthenticator(auther),
		yoga.WithPrincipalResolver(resolver),
		yoga.WithSessionService(yoga.NewSessionService(sessions, teachers, users).WithLogger(rt.logger)),
		yoga.WithTeacherService(yoga.NewTeacherService(teachers)),
		yoga.WithUserService(yoga.NewUserService(users).WithLogger(rt.logger).WithActivitySink(sink)),
		yoga.WithParticipation(participation),
	)

	return yoga.NewServer(controller)
}

func activityLogSink(logger yoga.Logger) yoga.ActivitySink {
	return yoga.ActivitySinkFunc(func(ctx context.Context, event yoga.ActivityEvent) error {
		logger.Info("activity", activitymap.Normalize(event).Fields()...)
		return nil
	})
}
