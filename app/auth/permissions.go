package auth

import "github.com/vastrakart/go-storefront/app/models"

// Permission capability strings carried in token payloads.
const (
	PermAdminAccess     = "admin:access"
	PermUserRead        = "user:read"
	PermUserWrite       = "user:write"
	PermProductRead     = "product:read"
	PermProductWrite    = "product:write"
	PermInventoryRead   = "inventory:read"
	PermInventoryWrite  = "inventory:write"
	PermOrderRead       = "order:read"
	PermOrderWrite      = "order:write"
	PermReviewRead      = "review:read"
	PermReviewWrite     = "review:write"
	PermDashboardAccess = "dashboard:access"
	PermReturnsManage   = "returns:manage"
	PermReturnsRequest  = "returns:request"
	PermWishlistRead    = "wishlist:read"
	PermWishlistWrite   = "wishlist:write"
	PermProfileRead     = "profile:read"
	PermProfileWrite    = "profile:write"
)

// DefaultRolePermissions returns the role→permission table. The result is
// built fresh on each call and handed to the token service at startup; nothing
// reads it as ambient state afterwards.
func DefaultRolePermissions() map[string][]string {
	return map[string][]string{
		models.RoleAdmin: {
			PermAdminAccess,
			PermUserRead,
			PermUserWrite,
			PermProductRead,
			PermProductWrite,
			PermInventoryRead,
			PermInventoryWrite,
			PermOrderRead,
			PermOrderWrite,
			PermReviewRead,
			PermReviewWrite,
			PermDashboardAccess,
			PermReturnsManage,
		},
		models.RoleContentManager: {
			PermProductRead,
			PermProductWrite,
			PermInventoryRead,
			PermInventoryWrite,
		},
		models.RoleCustomer: {
			PermProductRead,
			PermReviewWrite,
			PermOrderRead,
			PermWishlistRead,
			PermWishlistWrite,
			PermProfileRead,
			PermProfileWrite,
			PermReturnsRequest,
		},
	}
}
