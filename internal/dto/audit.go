package dto

type AuditQuery struct {
	Module string
	Limit  int
}
