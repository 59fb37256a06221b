package sandbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finconsgroup/zooadmin/pkg/credstore"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

// newTestServer boots a fully seeded sandbox on an httptest server. Each
// call gets its own database and its own login rate limiter.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	app, err := New(Config{
		DatabaseFile:        filepath.Join(t.TempDir(), "zoo.db"),
		Seed:                true,
		Env:                 "dev",
		LogLevel:            "error",
		LogFormat:           "text",
		ShutdownGracePeriod: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server, username, password string) *zoosdk.Session {
	t.Helper()

	session := zoosdk.NewSession(zoosdk.NewClient(srv.URL, credstore.NewMemoryStore()), nil)
	_, err := session.Login(context.Background(), username, password)
	require.NoError(t, err)
	return session
}

func TestLoginEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	t.Run("seeded admin", func(t *testing.T) {
		session := login(t, srv, "admin", "admin123")
		principal := session.CurrentUser()
		require.NotNil(t, principal)
		assert.Equal(t, "admin", principal.Username)
		assert.Equal(t, "Ada Min", principal.DisplayName())
		assert.Equal(t, zoosdk.RoleAdmin, principal.Role)
		assert.Nil(t, principal.OperatorType)
	})

	t.Run("seeded operator carries subtype", func(t *testing.T) {
		session := login(t, srv, "operator", "operator123")
		principal := session.CurrentUser()
		require.NotNil(t, principal)
		require.NotNil(t, principal.OperatorType)
		assert.Equal(t, zoosdk.OperatorZookeeper, *principal.OperatorType)
	})

	t.Run("wrong password", func(t *testing.T) {
		session := zoosdk.NewSession(zoosdk.NewClient(srv.URL, credstore.NewMemoryStore()), nil)
		_, err := session.Login(context.Background(), "admin", "wrong")
		assert.ErrorIs(t, err, zoosdk.ErrInvalidCredentials)
	})

	t.Run("connectivity probe", func(t *testing.T) {
		session := login(t, srv, "admin", "admin123")
		msg, err := session.Client().TestConnection(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Connection OK", msg)
	})
}

func TestAnimalLifecycle(t *testing.T) {
	srv := newTestServer(t)
	client := login(t, srv, "admin", "admin123").Client()
	ctx := context.Background()

	seeded, err := client.ListAnimals(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, seeded)

	created, err := client.CreateAnimal(ctx, zoosdk.Animal{
		Name:     "Nilo",
		Category: zoosdk.CategoryReptile,
		Weight:   420,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := client.GetAnimal(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nilo", fetched.Name)
	assert.Equal(t, zoosdk.CategoryReptile, fetched.Category)

	fetched.Weight = 435
	updated, err := client.UpdateAnimal(ctx, created.ID, *fetched)
	require.NoError(t, err)
	assert.Equal(t, float64(435), updated.Weight)

	require.NoError(t, client.DeleteAnimal(ctx, created.ID))

	_, err = client.GetAnimal(ctx, created.ID)
	assert.ErrorIs(t, err, zoosdk.ErrNotFound)
}

func TestEnclosureLifecycle(t *testing.T) {
	srv := newTestServer(t)
	client := login(t, srv, "admin", "admin123").Client()
	ctx := context.Background()

	created, err := client.CreateEnclosure(ctx, zoosdk.Enclosure{
		Name:        "Terrario",
		Area:        80,
		Description: "Rettilario coperto",
	})
	require.NoError(t, err)

	// The seeded savanna enclosure reports its resident animals by id.
	all, err := client.ListEnclosures(ctx)
	require.NoError(t, err)
	var savana *zoosdk.Enclosure
	for i := range all {
		if all[i].Name == "Savana" {
			savana = &all[i]
		}
	}
	require.NotNil(t, savana)
	assert.NotEmpty(t, savana.Animals)

	created.Description = "Rettilario coperto e riscaldato"
	updated, err := client.UpdateEnclosure(ctx, created.ID, *created)
	require.NoError(t, err)
	assert.Equal(t, "Rettilario coperto e riscaldato", updated.Description)

	require.NoError(t, client.DeleteEnclosure(ctx, created.ID))
	_, err = client.GetEnclosure(ctx, created.ID)
	assert.ErrorIs(t, err, zoosdk.ErrNotFound)
}

func TestUserManagement(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin", "admin123").Client()
	ctx := context.Background()

	op := zoosdk.OperatorVeterinarian
	created, err := admin.CreateUser(ctx, zoosdk.UserInput{
		Name:         "Vera",
		LastName:     "Neri",
		Username:     "vera",
		Password:     "vera123",
		Role:         zoosdk.RoleOperator,
		OperatorType: &op,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotNil(t, created.OperatorType)
	assert.Equal(t, zoosdk.OperatorVeterinarian, *created.OperatorType)

	// The created account can log in straight away.
	veraSession := login(t, srv, "vera", "vera123")
	assert.True(t, veraSession.IsOperator())

	// User reads nest the owned records.
	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	var manager *zoosdk.User
	for i := range users {
		if users[i].Username == "manager" {
			manager = &users[i]
		}
	}
	require.NotNil(t, manager)
	assert.NotEmpty(t, manager.Enclosures)

	require.NoError(t, admin.DeleteUser(ctx, created.ID))
	_, err = admin.GetUser(ctx, created.ID)
	assert.ErrorIs(t, err, zoosdk.ErrNotFound)
}

func TestRoleEnforcement(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	manager := login(t, srv, "manager", "manager123").Client()
	operator := login(t, srv, "operator", "operator123").Client()

	animals, err := operator.ListAnimals(ctx)
	require.NoError(t, err, "every authenticated role may read")
	require.NotEmpty(t, animals)

	t.Run("manager may edit but not delete", func(t *testing.T) {
		target := animals[0]
		target.Weight += 1
		_, err := manager.UpdateAnimal(ctx, target.ID, target)
		require.NoError(t, err)

		err = manager.DeleteAnimal(ctx, target.ID)
		assert.ErrorIs(t, err, zoosdk.ErrForbidden)
	})

	t.Run("operator may not add or edit", func(t *testing.T) {
		_, err := operator.CreateAnimal(ctx, zoosdk.Animal{Name: "Kala", Category: zoosdk.CategoryBird})
		assert.ErrorIs(t, err, zoosdk.ErrForbidden)

		target := animals[0]
		_, err = operator.UpdateAnimal(ctx, target.ID, target)
		assert.ErrorIs(t, err, zoosdk.ErrForbidden)
	})

	t.Run("operator may not see users", func(t *testing.T) {
		_, err := operator.ListUsers(ctx)
		assert.ErrorIs(t, err, zoosdk.ErrForbidden)
	})

	t.Run("manager may not accept tickets", func(t *testing.T) {
		tickets, err := manager.AllTickets(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, tickets)
		_, err = manager.AcceptTicket(ctx, tickets[0].ID)
		assert.ErrorIs(t, err, zoosdk.ErrForbidden)
	})
}

func TestTicketWorkflow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	operatorSession := login(t, srv, "operator", "operator123")
	operator := operatorSession.Client()
	operatorID := operatorSession.CurrentUser().ID

	dashboard, err := operator.DashboardTickets(ctx)
	require.NoError(t, err)
	require.Len(t, dashboard, 1, "seed leaves one unassigned ticket")
	open := dashboard[0]
	assert.False(t, open.Assigned())

	mine, err := operator.MyTickets(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1, "seed assigns one ticket to the operator")

	t.Run("accept moves the ticket off the dashboard", func(t *testing.T) {
		accepted, err := operator.AcceptTicket(ctx, open.ID)
		require.NoError(t, err)
		require.True(t, accepted.Assigned())
		assert.Equal(t, operatorID, *accepted.User)

		dashboard, err := operator.DashboardTickets(ctx)
		require.NoError(t, err)
		assert.Empty(t, dashboard)

		mine, err := operator.MyTickets(ctx)
		require.NoError(t, err)
		assert.Len(t, mine, 2)
	})

	t.Run("accepting an assigned ticket conflicts", func(t *testing.T) {
		_, err := operator.AcceptTicket(ctx, open.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, zoosdk.ErrServer)

		var apiErr *zoosdk.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})

	t.Run("completing someone else's ticket is forbidden", func(t *testing.T) {
		other := login(t, srv, "admin", "admin123").Client()
		op := zoosdk.OperatorSecurityGuard
		_, err := other.CreateUser(ctx, zoosdk.UserInput{
			Name: "Gino", LastName: "Verdi", Username: "gino", Password: "gino123",
			Role: zoosdk.RoleOperator, OperatorType: &op,
		})
		require.NoError(t, err)

		gino := login(t, srv, "gino", "gino123").Client()
		_, err = gino.CompleteTicket(ctx, open.ID)
		assert.ErrorIs(t, err, zoosdk.ErrForbidden)
	})

	t.Run("complete removes the ticket", func(t *testing.T) {
		completed, err := operator.CompleteTicket(ctx, open.ID)
		require.NoError(t, err)
		assert.Equal(t, open.ID, completed.ID)

		_, err = operator.GetTicket(ctx, open.ID)
		assert.ErrorIs(t, err, zoosdk.ErrNotFound)
	})

	t.Run("managers create tickets for operators", func(t *testing.T) {
		manager := login(t, srv, "manager", "manager123").Client()
		created, err := manager.CreateTicket(ctx, zoosdk.Ticket{
			Title:           "Pulizia voliera",
			RecommendedRole: zoosdk.OperatorZookeeper,
			Urgency:         zoosdk.UrgencyLow,
			Description:     "Pulizia settimanale",
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		assert.False(t, created.Assigned())
		assert.NotEmpty(t, created.CreationDate)

		dashboard, err := operator.DashboardTickets(ctx)
		require.NoError(t, err)
		assert.Len(t, dashboard, 1)
	})
}

func TestLoginRateLimit(t *testing.T) {
	srv := newTestServer(t)

	attempt := func() int {
		body := strings.NewReader(`{"username":"admin","password":"wrong"}`)
		resp, err := http.Post(srv.URL+"/auth/login", "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusBadRequest, attempt())
	}

	resp, err := http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"username":"admin","password":"admin123"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.False(t, payload.Success)
	assert.Contains(t, payload.Message, "too many requests")
}

func TestUnauthenticatedRequestsAreChallenged(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/animal/list")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")
}
