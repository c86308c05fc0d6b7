package api

import (
	"Blog_Manager/config"
	"Blog_Manager/internal/models"
	"Blog_Manager/internal/task"
	"Blog_Manager/pkg/content"
	"Blog_Manager/pkg/render"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

// APIHandlers 持有所有依赖
type APIHandlers struct {
	taskManager *task.Manager
	service     *content.Service
	site        *models.SiteConfig
}

// NewAPIHandlers 创建一个新的API处理器实例
func NewAPIHandlers(tm *task.Manager, svc *content.Service, site *models.SiteConfig) *APIHandlers {
	return &APIHandlers{
		taskManager: tm,
		service:     svc,
		site:        site,
	}
}

// --- 辅助函数 ---

// respondJSON 辅助函数，用于统一返回JSON响应
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError 辅助函数，用于统一返回错误信息
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// --- 站点与类别处理器 ---

// HandleGetSite 返回完整的站点模型（已加载类别带 items）
func (h *APIHandlers) HandleGetSite(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.site)
}

// HandleListCategories 返回类别元信息列表（按展示序号排好序）
func (h *APIHandlers) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.site.Categories)
}

// renderedItem 在条目之上附带渲染好的正文 HTML
type renderedItem struct {
	*models.ContentItem
	ContentHTML string `json:"contentHtml,omitempty"`
}

// HandleGetCategoryItems 返回一个类别的内容条目，未加载时就地触发加载。
// 带 ?render=html 时把条目的自由文本正文渲染为 HTML 一并返回。
func (h *APIHandlers) HandleGetCategoryItems(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	cat := h.site.CategoryByID(categoryID)
	if cat == nil {
		respondError(w, http.StatusNotFound, "未找到类别: "+categoryID)
		return
	}

	items := h.service.LoadCategoryContent(r.Context(), cat)

	if sum, ok := h.service.Fingerprint(cat.ID); ok {
		w.Header().Set("ETag", `"`+sum+`"`)
	}

	if r.URL.Query().Get("render") != "html" {
		respondJSON(w, http.StatusOK, items)
		return
	}

	rendered := make([]renderedItem, 0, len(items))
	for _, item := range items {
		ri := renderedItem{ContentItem: item}
		if item.Content != "" {
			html, err := render.ToHTML(item.Content)
			if err != nil {
				slog.Warn("正文渲染失败", "类别", cat.ID, "条目", item.Title, "error", err)
			} else {
				ri.ContentHTML = html
			}
		}
		rendered = append(rendered, ri)
	}
	respondJSON(w, http.StatusOK, rendered)
}

// HandleReloadCategory 丢弃一个类别的缓存并重新抓取
func (h *APIHandlers) HandleReloadCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	cat := h.site.CategoryByID(categoryID)
	if cat == nil {
		respondError(w, http.StatusNotFound, "未找到类别: "+categoryID)
		return
	}
	items := h.service.ReloadCategory(r.Context(), cat)
	respondJSON(w, http.StatusOK, items)
}

// --- 任务处理器 ---

func (h *APIHandlers) HandleStartPreloadTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := h.taskManager.StartPreloadTask()
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"taskId": taskID})
}

func (h *APIHandlers) HandleGetTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskId")
	status, err := h.taskManager.GetTaskStatus(taskID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// --- 配置处理器 ---

// HandleGetConfig 获取当前应用配置
func (h *APIHandlers) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, config.C)
}

// HandleUpdateConfig 更新并保存应用配置
func (h *APIHandlers) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var newConfig config.Config
	if err := json.NewDecoder(r.Body).Decode(&newConfig); err != nil {
		respondError(w, http.StatusBadRequest, "无效的配置格式: "+err.Error())
		return
	}

	// 1. 将接收到的新配置数据序列化为YAML格式
	yamlData, err := yaml.Marshal(&newConfig)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "序列化配置为YAML失败: "+err.Error())
		return
	}

	// 2. 将YAML数据写入到 config.yaml 文件（假设配置文件在当前工作目录）
	if err := os.WriteFile("config.yaml", yamlData, 0644); err != nil {
		respondError(w, http.StatusInternalServerError, "写入config.yaml文件失败: "+err.Error())
		return
	}

	// 3. 更新内存中的全局配置变量
	config.C = &newConfig

	respondJSON(w, http.StatusOK, config.C)
}
