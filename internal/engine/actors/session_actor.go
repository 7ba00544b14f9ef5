package actors

import (
	"log"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"broad-forum/internal/auth"
	"broad-forum/internal/models"
	"broad-forum/internal/store"
	"broad-forum/internal/utils"
)

// Message types for session operations
type (
	LoginMsg struct {
		Username string
		Password string
	}

	RegisterMsg struct {
		Username    string
		DisplayName string
		Password    string
	}

	LogoutMsg struct{}

	GetSessionMsg struct{}

	GetProfileMsg struct{}

	UpdateProfileMsg struct {
		Profile models.Profile
	}

	ToggleJoinMsg struct {
		CommunityID uuid.UUID
	}

	GetJoinedCommunitiesMsg struct{}

	IsJoinedMsg struct {
		CommunityID uuid.UUID
	}
)

// SessionState is the response for login, register and session queries
type SessionState struct {
	LoggedIn    bool
	UserID      uuid.UUID
	DisplayName string
	Token       string
}

// JoinResult reports the membership state after a toggle
type JoinResult struct {
	Joined bool
}

type account struct {
	ID             uuid.UUID
	Username       string
	HashedPassword string
	Profile        models.Profile
}

// SessionActor owns the signed-in session: the account registry, the
// current session token and the joined-communities set. Visitors can
// read everything; mutations that need a session respond with the
// login-required error instead of changing state.
type SessionActor struct {
	accounts map[string]*account
	store    *store.Store
	issuer   *auth.TokenIssuer
	metrics  *utils.MetricsCollector

	current *account
	token   string
	joined  map[uuid.UUID]bool
}

// DemoPassword unlocks the seeded demo account.
const DemoPassword = "broadforum"

func NewSessionActor(st *store.Store, issuer *auth.TokenIssuer, metrics *utils.MetricsCollector) actor.Actor {
	a := &SessionActor{
		accounts: make(map[string]*account),
		store:    st,
		issuer:   issuer,
		metrics:  metrics,
		joined:   make(map[uuid.UUID]bool),
	}

	// Seed the demo account the product ships with.
	hashed, err := hashPassword(DemoPassword)
	if err != nil {
		log.Printf("SessionActor: failed to hash demo password: %v", err)
	} else {
		profile := st.DefaultProfile()
		a.accounts["user_99"] = &account{
			ID:             uuid.New(),
			Username:       "user_99",
			HashedPassword: hashed,
			Profile:        profile,
		}
	}
	return a
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (a *SessionActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("SessionActor started")

	case *actor.Stopping:
		log.Printf("SessionActor stopping")

	case *LoginMsg:
		a.handleLogin(context, msg)

	case *RegisterMsg:
		a.handleRegister(context, msg)

	case *LogoutMsg:
		a.handleLogout(context)

	case *GetSessionMsg:
		context.Respond(a.sessionState())

	case *GetProfileMsg:
		a.handleGetProfile(context)

	case *UpdateProfileMsg:
		a.handleUpdateProfile(context, msg)

	case *ToggleJoinMsg:
		a.handleToggleJoin(context, msg)

	case *GetJoinedCommunitiesMsg:
		a.handleGetJoined(context)

	case *IsJoinedMsg:
		context.Respond(a.current != nil && a.joined[msg.CommunityID])
	}
}

func (a *SessionActor) sessionState() *SessionState {
	if a.current == nil {
		return &SessionState{}
	}
	return &SessionState{
		LoggedIn:    true,
		UserID:      a.current.ID,
		DisplayName: a.current.Profile.DisplayName,
		Token:       a.token,
	}
}

func (a *SessionActor) handleLogin(context actor.Context, msg *LoginMsg) {
	startTime := time.Now()

	acct, exists := a.accounts[msg.Username]
	if !exists {
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid credentials", nil))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.HashedPassword), []byte(msg.Password)); err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid credentials", nil))
		return
	}

	token, err := a.issuer.GenerateToken(acct.ID)
	if err != nil {
		log.Printf("SessionActor: failed to generate token: %v", err)
		context.Respond(utils.NewAppError(utils.ErrInvalidToken, "Authentication error", err))
		return
	}

	a.current = acct
	a.token = token

	a.metrics.AddOperationLatency("login", time.Since(startTime))
	log.Printf("SessionActor: login successful for %s", acct.Username)
	context.Respond(a.sessionState())
}

func (a *SessionActor) handleRegister(context actor.Context, msg *RegisterMsg) {
	startTime := time.Now()

	if _, exists := a.accounts[msg.Username]; exists {
		context.Respond(utils.NewAppError(utils.ErrUserAlreadyExists, "Username already taken", nil))
		return
	}

	hashed, err := hashPassword(msg.Password)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Failed to hash password", err))
		return
	}

	acct := &account{
		ID:             uuid.New(),
		Username:       msg.Username,
		HashedPassword: hashed,
		Profile: models.Profile{
			DisplayName: msg.DisplayName,
			Avatar:      "https://picsum.photos/100/100",
		},
	}
	a.accounts[msg.Username] = acct

	token, err := a.issuer.GenerateToken(acct.ID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidToken, "Authentication error", err))
		return
	}

	// Registration signs the new account in.
	a.current = acct
	a.token = token

	a.metrics.AddOperationLatency("register", time.Since(startTime))
	log.Printf("SessionActor: registered new account %s", acct.Username)
	context.Respond(a.sessionState())
}

func (a *SessionActor) handleLogout(context actor.Context) {
	if a.current != nil {
		log.Printf("SessionActor: logging out %s", a.current.Username)
	}
	a.current = nil
	a.token = ""
	// Membership is session scoped, so it goes with the session.
	a.joined = make(map[uuid.UUID]bool)
	context.Respond(true)
}

func (a *SessionActor) handleGetProfile(context actor.Context) {
	if a.current == nil {
		context.Respond(a.store.DefaultProfile())
		return
	}
	context.Respond(a.current.Profile)
}

func (a *SessionActor) handleUpdateProfile(context actor.Context, msg *UpdateProfileMsg) {
	if a.current == nil {
		context.Respond(utils.NewLoginRequiredError("update profile"))
		return
	}
	// The profile is replaced wholesale, matching the settings form.
	a.current.Profile = msg.Profile
	context.Respond(a.current.Profile)
}

func (a *SessionActor) handleToggleJoin(context actor.Context, msg *ToggleJoinMsg) {
	startTime := time.Now()

	if a.current == nil {
		// No mutation: the caller is expected to open the login prompt.
		context.Respond(utils.NewLoginRequiredError("join community"))
		return
	}

	if _, exists := a.store.CommunityByID(msg.CommunityID); !exists {
		context.Respond(utils.NewAppError(utils.ErrCommunityNotFound, "Community not found", nil))
		return
	}

	joined := !a.joined[msg.CommunityID]
	if joined {
		a.joined[msg.CommunityID] = true
	} else {
		delete(a.joined, msg.CommunityID)
	}

	a.metrics.AddOperationLatency("toggle_join", time.Since(startTime))
	log.Printf("SessionActor: membership toggled, community=%s joined=%v", msg.CommunityID, joined)
	context.Respond(&JoinResult{Joined: joined})
}

func (a *SessionActor) handleGetJoined(context actor.Context) {
	communities := make([]models.Community, 0, len(a.joined))
	for id := range a.joined {
		if c, exists := a.store.CommunityByID(id); exists {
			communities = append(communities, c)
		}
	}
	context.Respond(communities)
}
