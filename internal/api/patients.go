package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/BruksfildServices01/psique-web/internal/models"
)

func (c *Client) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var out []models.Patient
	if err := c.do(ctx, http.MethodGet, "/patients", "patients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	var out models.Patient
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/patients/%d", id), "patients", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePatient(ctx context.Context, in models.PatientInput) error {
	return c.do(ctx, http.MethodPost, "/patients", "patients", in, nil)
}

func (c *Client) UpdatePatient(ctx context.Context, id uint, in models.PatientInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/patients/%d", id), "patients", in, nil)
}

func (c *Client) DeletePatient(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/patients/%d", id), "patients", nil, nil)
}

func (c *Client) ListPatientSessions(ctx context.Context, patientID uint) ([]models.SessionRecord, error) {
	var out []models.SessionRecord
	path := fmt.Sprintf("/patients/%d/sessions", patientID)
	if err := c.do(ctx, http.MethodGet, path, "patient_sessions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePatientSession grava um novo registro de sessão; não há edição.
func (c *Client) CreatePatientSession(ctx context.Context, patientID uint, in models.SessionRecordInput) error {
	path := fmt.Sprintf("/patients/%d/sessions", patientID)
	return c.do(ctx, http.MethodPost, path, "patient_sessions", in, nil)
}
