package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/BruksfildServices01/psique-web/internal/models"
)

// ListSchedules busca todos os agendamentos, sem paginação.
func (c *Client) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	var out []models.Schedule
	if err := c.do(ctx, http.MethodGet, "/schedules", "schedules", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSchedule(ctx context.Context, id uint) (*models.Schedule, error) {
	var out models.Schedule
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/schedules/%d", id), "schedules", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSchedule(ctx context.Context, in models.CreateScheduleInput) error {
	return c.do(ctx, http.MethodPost, "/schedules", "schedules", in, nil)
}

func (c *Client) UpdateSchedule(ctx context.Context, id uint, in models.UpdateScheduleInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/schedules/%d", id), "schedules", in, nil)
}

func (c *Client) DeleteSchedule(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/schedules/%d", id), "schedules", nil, nil)
}
