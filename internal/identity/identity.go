package identity

import (
	"context"
	"slices"
)

// Unknown используется, когда контекст аутентификации отсутствует
const Unknown = "unknown"

// RoleAdmin дает доступ ко всем заказам
const RoleAdmin = "ADMIN"

// AuthContext данные вызывающего, извлеченные на периметре из токена
type AuthContext struct {
	Principal         string
	PreferredUsername string
	Authorities       []string
	Token             string
}

// Identity типизированная личность вызывающего, которую получает ядро
type Identity struct {
	SubjectID string
	IsAdmin   bool
}

// Resolve превращает контекст аутентификации в Identity. Никогда не падает:
// отсутствующий контекст дает (unknown, false).
func Resolve(ac *AuthContext) Identity {
	if ac == nil {
		return Identity{SubjectID: Unknown}
	}

	subject := ac.PreferredUsername
	if subject == "" {
		subject = ac.Principal
	}
	if subject == "" {
		subject = Unknown
	}

	return Identity{
		SubjectID: subject,
		IsAdmin:   slices.Contains(ac.Authorities, RoleAdmin),
	}
}

type authKey struct{}

func WithAuthContext(ctx context.Context, ac *AuthContext) context.Context {
	return context.WithValue(ctx, authKey{}, ac)
}

func FromContext(ctx context.Context) *AuthContext {
	ac, ok := ctx.Value(authKey{}).(*AuthContext)
	if !ok {
		return nil
	}
	return ac
}

// BearerToken возвращает исходный токен вызывающего для проброса в другие сервисы
func BearerToken(ctx context.Context) string {
	if ac := FromContext(ctx); ac != nil {
		return ac.Token
	}
	return ""
}
