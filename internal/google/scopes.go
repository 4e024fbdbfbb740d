package google

// DefaultOAuthScopes are the Google OAuth scopes meetslot requires.
//
// calendar.events grants read/write access to event details (the detailed
// source and the write-back), calendar.freebusy grants the availability
// query (the primary source). The OpenID Connect scopes identify the
// authorized user.
var DefaultOAuthScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/calendar.freebusy",
}
