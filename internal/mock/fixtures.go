package mock

import (
	"encoding/json"
	"time"

	"github.com/skyfn/skyfn-console/internal/domain"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// seed populates the demo fixtures. Identifiers are fixed so demo flows and
// documentation can reference them.
func (s *Store) seed() {
	now := time.Now().UTC()
	day := 24 * time.Hour

	s.users = []domain.User{
		{
			ID:        1,
			Username:  "demo",
			Name:      "Demo User",
			CreatedAt: now.Add(-120 * day),
			UpdatedAt: now.Add(-1 * day),
		},
	}

	s.workspaces = []domain.Workspace{
		{
			ID:        "550e8400-e29b-41d4-a716-446655440000",
			Name:      "Production Environment",
			OwnerID:   1,
			CreatedAt: now.Add(-90 * day),
			UpdatedAt: now.Add(-1 * day),
		},
		{
			ID:        "550e8400-e29b-41d4-a716-446655440001",
			Name:      "Development Workspace",
			OwnerID:   1,
			CreatedAt: now.Add(-60 * day),
			UpdatedAt: now.Add(-3 * day),
		},
		{
			ID:        "550e8400-e29b-41d4-a716-446655440002",
			Name:      "Staging Environment",
			OwnerID:   1,
			CreatedAt: now.Add(-45 * day),
			UpdatedAt: now.Add(-7 * day),
		},
	}

	s.functions = []domain.FunctionDetail{
		{
			Function: domain.Function{
				ID:            "6f1e8400-0000-41d4-a716-000000000001",
				Name:          "Image Resizer",
				Runtime:       domain.RuntimeNodeJS,
				ExecutionType: domain.ExecutionSync,
				WorkspaceID:   "550e8400-e29b-41d4-a716-446655440000",
				Status:        domain.FunctionStatusDeployed,
				KnativeURL:    strPtr("https://image-resizer.default.example.com"),
				CreatedAt:     now.Add(-30 * day),
				UpdatedAt:     now.Add(-2 * time.Hour),
			},
			Code: "exports.handler = async (event) => {\n  const { width, height } = JSON.parse(event.body);\n  return { statusCode: 200, body: JSON.stringify({ width, height }) };\n};\n",
		},
		{
			Function: domain.Function{
				ID:            "6f1e8400-0000-41d4-a716-000000000002",
				Name:          "Data Validator",
				Runtime:       domain.RuntimePython,
				ExecutionType: domain.ExecutionAsync,
				WorkspaceID:   "550e8400-e29b-41d4-a716-446655440000",
				Status:        domain.FunctionStatusPending,
				CreatedAt:     now.Add(-1 * day),
				UpdatedAt:     now.Add(-1 * day),
			},
			Code: "def handler(event, context):\n    return {\"statusCode\": 200, \"body\": \"Data validated\"}\n",
		},
		{
			Function: domain.Function{
				ID:            "6f1e8400-0000-41d4-a716-000000000003",
				Name:          "Webhook Processor",
				Runtime:       domain.RuntimeNodeJS,
				ExecutionType: domain.ExecutionAsync,
				WorkspaceID:   "550e8400-e29b-41d4-a716-446655440001",
				Status:        domain.FunctionStatusFailed,
				CreatedAt:     now.Add(-10 * day),
				UpdatedAt:     now.Add(-1 * day),
			},
			Code: "exports.handler = async (event) => {\n  return { statusCode: 202 };\n};\n",
		},
	}

	s.jobs = []domain.Job{
		{
			ID:          "a11e8400-0000-41d4-a716-000000000010",
			FunctionID:  "6f1e8400-0000-41d4-a716-000000000001",
			Status:      domain.JobStatusSuccess,
			Input:       json.RawMessage(`{"image":"test.jpg","width":800,"height":600}`),
			Output:      json.RawMessage(`{"resized_image":"test_resized.jpg"}`),
			CreatedAt:   now.Add(-1 * time.Hour),
			StartedAt:   timePtr(now.Add(-59 * time.Minute)),
			CompletedAt: timePtr(now.Add(-58 * time.Minute)),
			Duration:    1234,
		},
		{
			ID:          "a11e8400-0000-41d4-a716-000000000011",
			FunctionID:  "6f1e8400-0000-41d4-a716-000000000002",
			Status:      domain.JobStatusError,
			Input:       json.RawMessage(`{"data":"invalid"}`),
			Error:       "Validation failed: Invalid data format",
			CreatedAt:   now.Add(-2 * time.Hour),
			StartedAt:   timePtr(now.Add(-119 * time.Minute)),
			CompletedAt: timePtr(now.Add(-118 * time.Minute)),
			Duration:    567,
		},
	}
}
