package yoga

import (
	"net/http"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// ErrInvalidPayload request body could not be decoded
var ErrInvalidPayload = goerrors.New("invalid request payload", goerrors.CategoryBadInput).
	WithTextCode("INVALID_PAYLOAD").
	WithCode(goerrors.CodeBadRequest)

// ControllerRoutes are joined under API
type ControllerRoutes struct {
	API           string
	Auth          string
	Sessions      string
	Teachers      string
	Users         string
	Participation string
}

// Controller exposes the REST API
type Controller struct {
	Logger        Logger
	Config        Config
	Routes        *ControllerRoutes
	Auther        Authenticator
	Resolver      ClaimsResolver
	Sessions      *SessionService
	Teachers      *TeacherService
	Users         *UserService
	Participation ParticipationStateMachine
}

type ControllerOption func(*Controller) *Controller

func WithControllerLogger(l Logger) ControllerOption {
	return func(c *Controller) *Controller {
		c.Logger = normalizeLogger(l)
		return c
	}
}

func WithControllerConfig(cfg Config) ControllerOption {
	return func(c *Controller) *Controller {
		c.Config = cfg
		return c
	}
}

func WithAuthenticator(a Authenticator) ControllerOption {
	return func(c *Controller) *Controller {
		c.Auther = a
		return c
	}
}

func WithPrincipalResolver(r ClaimsResolver) ControllerOption {
	return func(c *Controller) *Controller {
		c.Resolver = r
		return c
	}
}

func WithSessionService(s *SessionService) ControllerOption {
	return func(c *Controller) *Controller {
		c.Sessions = s
		return c
	}
}

func WithTeacherService(s *TeacherService) ControllerOption {
	return func(c *Controller) *Controller {
		c.Teachers = s
		return c
	}
}

func WithUserService(s *UserService) ControllerOption {
	return func(c *Controller) *Controller {
		c.Users = s
		return c
	}
}

func WithParticipation(sm ParticipationStateMachine) ControllerOption {
	return func(c *Controller) *Controller {
		c.Participation = sm
		return c
	}
}

func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger: defLogger{},
		Routes: &ControllerRoutes{
			API:           "/api",
			Auth:          "/auth",
			Sessions:      "/session",
			Teachers:      "/teacher",
			Users:         "/user",
			Participation: "/:id/participate/:userId",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	switch {
	case c.Config == nil:
		panic("Missing Config in yoga controller...")
	case c.Auther == nil:
		panic("Missing Authenticator in yoga controller...")
	case c.Resolver == nil:
		panic("Missing ClaimsResolver in yoga controller...")
	case c.Sessions == nil || c.Teachers == nil || c.Users == nil:
		panic("Missing services in yoga controller...")
	case c.Participation == nil:
		panic("Missing ParticipationStateMachine in yoga controller...")
	}

	return c
}

// RegisterRoutes mounts the API on app. Every group but auth requires a
// bearer token.
func RegisterRoutes[T any](app router.Router[T], c *Controller) {
	protected := ProtectedRoute(c.Resolver, c.Config)
	api := app.Group(c.Routes.API)

	auth := api.Group(c.Routes.Auth)
	auth.Post("/login", c.LoginPost)
	auth.Post("/register", c.RegisterPost)

	sessions := api.Group(c.Routes.Sessions).Use(protected)
	sessions.Get("/", c.SessionList)
	sessions.Get("/:id", c.SessionShow)
	sessions.Post("/", c.SessionCreate)
	sessions.Put("/:id", c.SessionUpdate)
	sessions.Delete("/:id", c.SessionDelete)
	sessions.Post(c.Routes.Participation, c.Participate)
	sessions.Delete(c.Routes.Participation, c.NoLongerParticipate)

	teachers := api.Group(c.Routes.Teachers).Use(protected)
	teachers.Get("/", c.TeacherList)
	teachers.Get("/:id", c.TeacherShow)

	users := api.Group(c.Routes.Users).Use(protected)
	users.Get("/:id", c.UserShow)
	users.Delete("/:id", c.UserDelete)
}

func (a *Controller) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)
	if err := ctx.Bind(payload); err != nil {
		return ErrInvalidPayload
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	res, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewJwtResponse(res))
}

func (a *Controller) RegisterPost(ctx router.Context) error {
	payload := new(SignupRequest)
	if err := ctx.Bind(payload); err != nil {
		return ErrInvalidPayload
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if err := a.Auther.Register(ctx.Context(), payload.Message()); err != nil {
		a.Logger.Warn("register user failed", "error", err)
		return err
	}

	return ctx.JSON(http.StatusOK, MessageResponse{Message: "User registered successfully!"})
}

func (a *Controller) SessionList(ctx router.Context) error {
	sessions, err := a.Sessions.FindAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NewSessionDTOs(sessions))
}

func (a *Controller) SessionShow(ctx router.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	session, err := a.Sessions.FindByID(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NewSessionDTO(session))
}

func (a *Controller) SessionCreate(ctx router.Context) error {
	session, err := sessionFromBody(ctx)
	if err != nil {
		return err
	}

	created, err := a.Sessions.Create(ctx.Context(), session)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NewSessionDTO(created))
}

func (a *Controller) SessionUpdate(ctx router.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	session, err := sessionFromBody(ctx)
	if err != nil {
		return err
	}

	updated, err := a.Sessions.Update(ctx.Context(), id, session)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NewSessionDTO(updated))
}

func (a *Controller) SessionDelete(ctx router.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := a.Sessions.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}

func (a *Controller) Participate(ctx router.Context) error {
	sessionID, userID, err := participationIDs(ctx)
	if err != nil {
		return err
	}

	if _, err := a.Participation.Participate(ctx.Context(), sessionID, userID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}

func (a *Controller) NoLongerParticipate(ctx router.Context) error {
	sessionID, userID, err := participationIDs(ctx)
	if err != nil {
		return err
	}

	if _, err := a.Participation.NoLongerParticipate(ctx.Context(), sessionID, userID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}

func (a *Controller) TeacherList(ctx router.Context) error {
	teachers, err := a.Teachers.FindAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NewTeacherDTOs(teachers))
}

func (a *Controller) TeacherShow(ctx router.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	teacher, err := a.Teachers.FindByID(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NewTeacherDTO(teacher))
}

func (a *Controller) UserShow(ctx router.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	user, err := a.Users.FindByID(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NewUserDTO(user))
}

func (a *Controller) UserDelete(ctx router.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	principal, ok := PrincipalFromContext(ctx.Context())
	if !ok {
		return ErrInvalidToken
	}

	if err := a.Users.Delete(ctx.Context(), principal, id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}

func sessionFromBody(ctx router.Context) (*Session, error) {
	payload := new(SessionRequest)
	if err := ctx.Bind(payload); err != nil {
		return nil, ErrInvalidPayload
	}

	if err := payload.Validate(); err != nil {
		return nil, err
	}

	session, err := payload.Session()
	if err != nil {
		return nil, ErrInvalidPayload
	}
	return session, nil
}

func participationIDs(ctx router.Context) (int64, int64, error) {
	sessionID, err := paramID(ctx, "id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return 0, 0, err
	}
	return sessionID, userID, nil
}

func paramID(ctx router.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name, ""), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
