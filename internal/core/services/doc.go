// Package services implements the driving port interfaces.
// Services contain the core business logic of the safeguard and
// retrieval pipeline and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO.
package services
