// Package api contains the HTTP handlers, request and response models, and
// error mapping for the resume tailoring service. Handlers accept work,
// hand it to the service layer, and answer immediately; clients observe
// completion through the status and event stream endpoints.
package api
