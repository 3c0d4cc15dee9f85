package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type contextKey string

const visitorIDKey = contextKey("visitorID")

// VisitorAuth определяет посетителя по Bearer-токену или по X-User-ID от шлюза.
type VisitorAuth struct {
	validateUC usecases_port.ValidateVisitorTokenUseCasePort
}

func NewVisitorAuth(validateUC usecases_port.ValidateVisitorTokenUseCasePort) *VisitorAuth {
	return &VisitorAuth{validateUC: validateUC}
}

// resolve возвращает (id, найден, ошибка-сообщение).
func (a *VisitorAuth) resolve(r *http.Request) (uuid.UUID, bool, string) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return uuid.Nil, false, "Authorization header must be a Bearer token"
		}
		claims, err := a.validateUC.Execute(r.Context(), strings.TrimSpace(token))
		if err != nil {
			return uuid.Nil, false, "Invalid visitor token"
		}
		return claims.VisitorID, true, ""
	}

	if raw := r.Header.Get("X-User-ID"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, false, "Invalid X-User-ID header format"
		}
		return id, true, ""
	}

	return uuid.Nil, false, "Visitor token is missing"
}

func withVisitor(r *http.Request, id uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), visitorIDKey, id)
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"visitor_id": id})
	ctx = contextkeys.ContextWithLogger(ctx, logger)
	return r.WithContext(ctx)
}

// RequireVisitor отклоняет запрос без посетителя с 401.
func (a *VisitorAuth) RequireVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok, reason := a.resolve(r)
		if !ok {
			WriteJSONError(w, http.StatusUnauthorized, reason)
			return
		}
		next.ServeHTTP(w, withVisitor(r, id))
	})
}

// IdentifyVisitor добавляет посетителя в контекст, если он есть. Ошибки не прерывают запрос.
func (a *VisitorAuth) IdentifyVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok, reason := a.resolve(r)
		if !ok {
			if r.Header.Get("Authorization") != "" || r.Header.Get("X-User-ID") != "" {
				contextkeys.LoggerFromContext(r.Context()).Debug("Visitor not identified", port.Fields{"reason": reason})
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, withVisitor(r, id))
	})
}

func visitorFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(visitorIDKey).(uuid.UUID)
	return id, ok
}
