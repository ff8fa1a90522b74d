// models/services_response.go
package models

// ServicesResponse is the raw upstream body. Services is a pointer so that a
// missing "services" field can be told apart from an empty one.
type ServicesResponse struct {
	Services *[]BusService `json:"services"`
}
