package dto

// DeviceCreateRequest deliberately has no owner field: the owner is always
// the authenticated principal, whatever the client sends.
type DeviceCreateRequest struct {
	Name string `json:"name"`
}

// DevicePatchRequest carries only the fields present in the request body;
// absent fields stay untouched.
type DevicePatchRequest struct {
	Name *string `json:"name"`
}
