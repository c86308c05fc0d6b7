package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Blog_Manager/internal/models"
	"Blog_Manager/pkg/content"

	"github.com/google/uuid"
)

// TaskStatus 定义了任务可能的状态。
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
)

// Task 结构体代表一次后台预加载任务。
type Task struct {
	ID        string     `json:"id"`
	Status    TaskStatus `json:"status"`
	Loaded    int        `json:"loaded"`
	Total     int        `json:"total"`
	Error     string     `json:"error,omitempty"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}

// Manager 管理内容预加载的后台任务。同一时刻最多允许一个任务在跑：
// 数据服务本身会对同一类别去重，但没必要让两轮预热互相排队。
type Manager struct {
	tasks map[string]*Task
	mu    sync.RWMutex

	service *content.Service
	site    *models.SiteConfig
}

// NewManager 创建并返回一个新的任务管理器实例。
func NewManager(service *content.Service, site *models.SiteConfig) *Manager {
	return &Manager{
		tasks:   make(map[string]*Task),
		service: service,
		site:    site,
	}
}

// StartPreloadTask 创建一个预加载任务并立即在后台启动它。
// 已有任务在运行时返回错误。
func (m *Manager) StartPreloadTask() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tasks {
		if t.Status == StatusRunning || t.Status == StatusPending {
			return "", fmt.Errorf("另一个预加载任务正在进行中 (ID: %s)，请等待其完成后再试", t.ID)
		}
	}

	taskID := uuid.New().String()
	newTask := &Task{
		ID:        taskID,
		Status:    StatusPending,
		Total:     len(m.site.Categories),
		StartTime: time.Now(),
	}
	m.tasks[taskID] = newTask

	go m.runPreload(newTask)

	return taskID, nil
}

// GetTaskStatus 根据任务ID检索特定任务的当前状态。
func (m *Manager) GetTaskStatus(taskID string) (*Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, exists := m.tasks[taskID]
	if !exists {
		return nil, fmt.Errorf("找不到任务ID: %s", taskID)
	}
	return t, nil
}

// runPreload 执行具体的预加载工作。类别级的失败在数据服务里
// 已被吸收为空内容，这里不会看到错误，任务总会走到 completed。
func (m *Manager) runPreload(t *Task) {
	m.mu.Lock()
	t.Status = StatusRunning
	m.mu.Unlock()

	m.service.PreloadCategories(context.Background(), m.site.Categories)

	m.mu.Lock()
	defer m.mu.Unlock()
	loaded := 0
	for _, cat := range m.site.Categories {
		if m.service.IsCategoryLoaded(cat.ID) {
			loaded++
		}
	}
	t.Loaded = loaded
	t.Status = StatusCompleted
	endTime := time.Now()
	t.EndTime = &endTime
}
