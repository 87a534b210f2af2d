// Package platformclient is a Go client for the orchestra platform REST
// backend: seasons, events, attendance, the forum and user accounts. It
// bundles the typed endpoint services with in-memory state stores that cache
// the last-fetched data per domain.
package platformclient

import (
	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/config"
	"github.com/oragh/platform-client/services"
	"github.com/oragh/platform-client/stores"
)

// Platform bundles the services and stores of one backend connection. All
// parts share the same HTTP adapter and token store.
type Platform struct {
	Client *api.Client

	Auth        *services.AuthService
	Seasons     *services.SeasonService
	Attendance  *services.AttendanceService
	Concerts    *services.ConcertService
	Forum       *services.ForumService
	Permissions *services.PermissionsService
	Users       *services.UserService
	Home        *services.HomeService

	AuthStore       *stores.AuthStore
	SeasonStore     *stores.SeasonStore
	AttendanceStore *stores.AttendanceStore
	ConcertStore    *stores.ConcertStore
	ForumStore      *stores.ForumStore
	UserStore       *stores.UserStore
	HomeStore       *stores.HomeStore
}

// New assembles a Platform against cfg. Tokens are read from and persisted
// to the given store; pass api.NewMemoryTokenStore() when persistence is
// not wanted.
func New(cfg config.Config, tokens api.TokenStore) *Platform {
	client := api.NewClient(cfg, tokens)

	auth := services.NewAuthService(client)
	seasons := services.NewSeasonService(client)
	attendance := services.NewAttendanceService(client)
	concerts := services.NewConcertService(client)
	forum := services.NewForumService(client)
	permissions := services.NewPermissionsService(client)
	users := services.NewUserService(client)
	home := services.NewHomeService(client)

	return &Platform{
		Client: client,

		Auth:        auth,
		Seasons:     seasons,
		Attendance:  attendance,
		Concerts:    concerts,
		Forum:       forum,
		Permissions: permissions,
		Users:       users,
		Home:        home,

		AuthStore:       stores.NewAuthStore(auth, permissions),
		SeasonStore:     stores.NewSeasonStore(seasons),
		AttendanceStore: stores.NewAttendanceStore(attendance, seasons),
		ConcertStore:    stores.NewConcertStore(concerts),
		ForumStore:      stores.NewForumStore(forum),
		UserStore:       stores.NewUserStore(users),
		HomeStore:       stores.NewHomeStore(home),
	}
}
