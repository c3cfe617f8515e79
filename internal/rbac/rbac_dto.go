package rbac

type PermissionsResponse struct {
	Role     string   `json:"role"`
	Features []string `json:"features"`
}

type CheckResponse struct {
	Role    string `json:"role"`
	Feature string `json:"feature"`
	Allowed bool   `json:"allowed"`
}
