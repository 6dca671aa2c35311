package yoga

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"

	"github.com/goliatone/go-yoga/middleware/jwtware"
)

// NewServer returns a fiber backed router server with the API routes
// registered
func NewServer(controller *Controller) router.Server[*fiber.App] {
	srv := router.NewFiberAdapter(func(_ *fiber.App) *fiber.App {
		app := fiber.New(fiber.Config{
			ErrorHandler:          NewErrorHandler(controller.Logger),
			DisableStartupMessage: true,
			UnescapePath:          true,
		})
		app.Use(recover.New())
		return app
	})
	RegisterRoutes(srv.Router(), controller)
	return srv
}

// NewApp returns the fiber app behind NewServer
func NewApp(controller *Controller) *fiber.App {
	return NewServer(controller).WrappedRouter()
}

// authenticated is what the bearer middleware resolves a token into
type authenticated struct {
	user   *User
	claims *JWTClaims
}

// ProtectedRoute returns the bearer middleware. Handlers read the principal
// and the token claims with PrincipalFromContext and ClaimsFromContext.
func ProtectedRoute(resolver ClaimsResolver, cfg Config) router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		AuthScheme:  cfg.GetAuthScheme(),
		ContextKey:  cfg.GetContextKey(),
		TokenLookup: cfg.GetTokenLookup(),
		Resolver: func(ctx context.Context, token string) (any, error) {
			user, claims, err := resolver.ResolveClaims(ctx, token)
			if err != nil {
				return nil, err
			}
			return authenticated{user: user, claims: claims}, nil
		},
		ContextEnricher: func(ctx context.Context, principal any) context.Context {
			auth, ok := principal.(authenticated)
			if !ok {
				return ctx
			}
			return WithClaimsContext(WithPrincipal(ctx, auth.user), auth.claims)
		},
		ErrorHandler: func(c router.Context, err error) error {
			return err
		},
	})
}

// NewErrorHandler maps rich errors to JSON responses
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	logger = normalizeLogger(logger)

	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if goerrors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(MessageResponse{Message: fiberErr.Message})
		}

		var richErr *goerrors.Error
		if !goerrors.As(err, &richErr) {
			richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
				WithCode(goerrors.CodeInternal)
		}

		status := StatusFromError(richErr)

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"path", c.OriginalURL(),
				"error", err,
				"category", richErr.Category,
				"details", print.MaybePrettyJSON(richErr.Metadata),
			)
			return c.Status(status).JSON(MessageResponse{Message: http.StatusText(status)})
		}

		logger.Debug("request rejected",
			"path", c.OriginalURL(),
			"error", richErr.Message,
			"text_code", richErr.TextCode,
		)

		body := fiber.Map{"message": richErr.Message}
		if fields, ok := richErr.Metadata["fields"]; ok {
			body["errors"] = fields
		}
		return c.Status(status).JSON(body)
	}
}

// StatusFromError returns the HTTP status for err
func StatusFromError(richErr *goerrors.Error) int {
	if richErr.Code > 0 {
		return richErr.Code
	}

	switch richErr.Category {
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
