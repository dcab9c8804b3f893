package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilig/internal/application/user/usecases"
	"bilig/internal/domain/user"
	"bilig/internal/interfaces/http/handlers/testutil"
)

type mockListUsersUC struct {
	result []*user.User
	total  int64
	err    error
}

func (m *mockListUsersUC) Execute(ctx context.Context, offset, limit int) ([]*user.User, int64, error) {
	return m.result, m.total, m.err
}

type mockBulkDeleteUC struct {
	result        *usecases.BulkDeleteResult
	err           error
	lastRequester uint
	lastIDs       []uint
}

func (m *mockBulkDeleteUC) Execute(ctx context.Context, userIDs []uint, requesterID uint) (*usecases.BulkDeleteResult, error) {
	m.lastIDs = userIDs
	m.lastRequester = requesterID
	return m.result, m.err
}

func TestUserHandler_List(t *testing.T) {
	email, err := user.NewEmail("saraa@example.mn")
	require.NoError(t, err)
	u, err := user.ReconstructUser(
		9, "usr_saraa", email, nil, "Сараа",
		user.RoleUser, user.StatusActive,
		time.Now(), time.Now(), 1,
	)
	require.NoError(t, err)

	h := NewUserHandler(&mockListUsersUC{result: []*user.User{u}, total: 1}, nil, discardLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/admin/users", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Items []AdminUserResponse `json:"items"`
			Total int64               `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, "saraa@example.mn", resp.Data.Items[0].Email)
	assert.Equal(t, uint(9), resp.Data.Items[0].ID)
}

func TestUserHandler_BulkDelete(t *testing.T) {
	bulkUC := &mockBulkDeleteUC{result: &usecases.BulkDeleteResult{}}
	h := NewUserHandler(nil, bulkUC, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/users/bulk-delete", gin.H{
		"user_ids": []uint{9, 10},
	})
	testutil.SetAuthContext(c, 1, "admin")
	h.BulkDelete(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{9, 10}, bulkUC.lastIDs)
	assert.Equal(t, uint(1), bulkUC.lastRequester)
}

func TestUserHandler_BulkDeleteRequiresIDs(t *testing.T) {
	h := NewUserHandler(nil, &mockBulkDeleteUC{}, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/users/bulk-delete", gin.H{
		"user_ids": []uint{},
	})
	testutil.SetAuthContext(c, 1, "admin")
	h.BulkDelete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
