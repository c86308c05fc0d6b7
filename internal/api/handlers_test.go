package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Blog_Manager/config"
	"Blog_Manager/internal/models"
	"Blog_Manager/internal/task"
	"Blog_Manager/pkg/content"
	"Blog_Manager/pkg/logger"

	"github.com/stretchr/testify/require"
)

const testConfigDoc = `## 博客信息
博客名称：测试站

## 展示类别

### 游戏
样式类型：game
展示序号：1
链接：[游戏](../content/games.md)

### 日记
样式类型：diary
展示序号：2
链接：[日记](../content/diary.md)
`

// newTestRouter 起一个假的内容源，返回完整组装好的路由
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/config.md", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testConfigDoc))
	})
	mux.HandleFunc("/content/games.md", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("## 塞尔达传说\n序号：1\n## 哈迪斯\n序号：2\n"))
	})
	mux.HandleFunc("/content/diary.md", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("## 雨天\n内容：窗外**一直**在下雨。\n"))
	})
	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	svc, err := content.NewService(config.ContentConfig{
		ConfigURL:    upstream.URL + "/config.md",
		FetchTimeout: 5 * time.Second,
	}, logger.Discard())
	require.NoError(t, err)

	site, err := svc.LoadSiteConfig(context.Background())
	require.NoError(t, err)

	return RegisterRoutes(task.NewManager(svc, site), svc, site)
}

func doRequest(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListCategories(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/api/v1/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var cats []models.CategoryMeta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	require.Len(t, cats, 2)
	require.Equal(t, "游戏", cats[0].Title)
	require.Equal(t, "game", cats[0].Type)
}

func TestGetCategoryItems(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/v1/categories/游戏/items")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("ETag"))

	var items []models.ContentItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, "塞尔达传说", items[0].Title)
}

func TestGetCategoryItems_NotFound(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/api/v1/categories/不存在/items")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCategoryItems_RenderHTML(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/api/v1/categories/日记/items?render=html")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		Title       string `json:"title"`
		ContentHTML string `json:"contentHtml"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Contains(t, items[0].ContentHTML, "<strong>一直</strong>")
}

func TestPreloadTaskEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/tasks/preload")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	taskID := resp["taskId"]
	require.NotEmpty(t, taskID)

	require.Eventually(t, func() bool {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/tasks/"+taskID)
		if rec.Code != http.StatusOK {
			return false
		}
		var status task.Task
		if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
			return false
		}
		return status.Status == task.StatusCompleted
	}, 5*time.Second, 20*time.Millisecond)
}

func TestGetTaskStatus_NotFound(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/api/v1/tasks/没有这个任务")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
