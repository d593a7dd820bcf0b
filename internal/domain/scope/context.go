package scope

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// CallerFromContext builds a Caller from the verified JWT claims placed on
// the request context by the jwtauth verifier. The token is already
// validated by the middleware; this only reads claims.
func CallerFromContext(ctx context.Context) (Caller, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Caller{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Caller{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	caller := Caller{UserID: userID}

	if tenantID, ok := claims["tenant_id"].(string); ok && tenantID != "" {
		caller.TenantID = &tenantID
	}
	if holding, ok := claims["holding"].(bool); ok {
		caller.Holding = holding
	}

	return caller, nil
}
