package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey          = "authenticated"
	KeyUserID        = "user_id"
	KeyEmail         = "email"
	KeyUsername      = "username"
	KeyFromProtected = "from_protected"
)
