// Package content 实现站点内容的数据服务：抓取站点配置文件，
// 再按需抓取、解析并缓存各类别的内容文件。
//
// 缓存和在途请求表都以类别 slug 为键，同一类别同时只会有一次抓取；
// 类别抓取失败会被就地吸收为"空内容"，不会向调用方冒泡。
package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"Blog_Manager/config"
	"Blog_Manager/internal/models"
	"Blog_Manager/pkg/hasher"
	"Blog_Manager/pkg/markdown"
)

// ConfigLoadError 表示站点配置文件加载失败。配置是页面初始化的前提，
// 这类错误是致命的，向上传播由外层呈现整页错误状态。
type ConfigLoadError struct {
	URL    string
	Status int
	Err    error
}

func (e *ConfigLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("加载站点配置失败 %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("加载站点配置失败 %s: 状态码 %d", e.URL, e.Status)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// pendingFetch 代表一次在途的类别抓取。后到的调用者等待 done 关闭后
// 直接取 items，不会发起第二次网络请求。
type pendingFetch struct {
	done  chan struct{}
	items []*models.ContentItem
}

// Service 是数据服务实例。显式构造、按引用注入到消费方，
// 不使用包级单例，测试可以为每个用例建一个新实例。
// 所有方法都可以被并发调用。
type Service struct {
	configURL string
	baseURL   *url.URL
	client    *http.Client
	userAgent string
	workers   int
	log       *slog.Logger

	mu      sync.Mutex
	cache   map[string][]*models.ContentItem
	pending map[string]*pendingFetch
	sums    map[string]string
}

// NewService 按内容配置构造数据服务。类别内容文件的相对路径
// 以站点配置文件所在目录为基准解析。
func NewService(cfg config.ContentConfig, log *slog.Logger) (*Service, error) {
	if cfg.ConfigURL == "" {
		return nil, fmt.Errorf("内容配置缺少 configURL")
	}
	base, err := url.Parse(cfg.ConfigURL)
	if err != nil {
		return nil, fmt.Errorf("无效的站点配置地址 '%s': %w", cfg.ConfigURL, err)
	}
	base.Path = path.Dir(base.Path)
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		configURL: cfg.ConfigURL,
		baseURL:   base,
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
		workers:   cfg.WorkerCount,
		log:       log,
		cache:     make(map[string][]*models.ContentItem),
		pending:   make(map[string]*pendingFetch),
		sums:      make(map[string]string),
	}, nil
}

// LoadSiteConfig 抓取并解析站点配置文件。非 2xx 状态或网络错误
// 返回 *ConfigLoadError。
func (s *Service) LoadSiteConfig(ctx context.Context) (*models.SiteConfig, error) {
	body, status, err := s.fetch(ctx, s.configURL)
	if err != nil {
		return nil, &ConfigLoadError{URL: s.configURL, Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &ConfigLoadError{URL: s.configURL, Status: status}
	}
	site := markdown.ParseConfig(string(body))
	s.log.Info("站点配置加载完成",
		"标题", site.BlogInfo.Title, "类别数", len(site.Categories))
	return site, nil
}

// LoadCategoryContent 返回一个类别的内容条目列表，并把结果原地挂到
// cat.Items 上。行为依次是：无内容文件返回空列表；缓存命中直接返回；
// 同一类别已有在途抓取则等待同一结果；否则发起抓取。抓取或解析失败
// 被吸收为已缓存的空列表，该类别退化为"无内容"而不是阻塞整页。
//
// 返回的切片是缓存本体，调用方只读，不做防御性拷贝。
func (s *Service) LoadCategoryContent(ctx context.Context, cat *models.CategoryMeta) []*models.ContentItem {
	if cat == nil {
		return nil
	}
	if cat.Path == "" {
		empty := []*models.ContentItem{}
		s.attach(cat, empty)
		return empty
	}

	s.mu.Lock()
	if items, ok := s.cache[cat.ID]; ok {
		cat.Items = items
		s.mu.Unlock()
		return items
	}
	if p, ok := s.pending[cat.ID]; ok {
		s.mu.Unlock()
		<-p.done
		s.attach(cat, p.items)
		return p.items
	}
	p := &pendingFetch{done: make(chan struct{})}
	s.pending[cat.ID] = p
	s.mu.Unlock()

	items, sum := s.fetchAndParse(ctx, cat)

	s.mu.Lock()
	s.cache[cat.ID] = items
	if sum != "" {
		s.sums[cat.ID] = sum
	}
	delete(s.pending, cat.ID)
	cat.Items = items
	s.mu.Unlock()

	p.items = items
	close(p.done)

	return items
}

// attach 在服务锁内把结果挂到类别上。类别对象被并发请求共享，
// 写入统一经过这把锁，维持单写者纪律。
func (s *Service) attach(cat *models.CategoryMeta, items []*models.ContentItem) {
	s.mu.Lock()
	cat.Items = items
	s.mu.Unlock()
}

// fetchAndParse 执行一次真实抓取。失败路径只记日志并返回空列表。
func (s *Service) fetchAndParse(ctx context.Context, cat *models.CategoryMeta) ([]*models.ContentItem, string) {
	target := s.resolve(cat.Path)
	body, status, err := s.fetch(ctx, target)
	if err != nil {
		s.log.Warn("类别内容抓取失败，按空内容处理",
			"类别", cat.ID, "地址", target, "error", err)
		return []*models.ContentItem{}, ""
	}
	if status < 200 || status > 299 {
		s.log.Warn("类别内容返回异常状态，按空内容处理",
			"类别", cat.ID, "地址", target, "状态码", status)
		return []*models.ContentItem{}, ""
	}
	items := markdown.ParseContent(string(body))
	s.log.Debug("类别内容解析完成", "类别", cat.ID, "条目数", len(items))
	return items, hasher.CalculateSHA256FromBytes(body)
}

// PreloadCategories 用一个有界的 worker 池后台预拉取所有给定类别，
// 等全部结束（包括被吸收的失败）后返回。用于启动后的预热，
// 不会让单个类别的失败中断其它类别。
func (s *Service) PreloadCategories(ctx context.Context, cats []*models.CategoryMeta) {
	numWorkers := s.workers
	if numWorkers <= 0 {
		numWorkers = 4
	}
	if numWorkers > len(cats) && len(cats) > 0 {
		numWorkers = len(cats)
	}

	var wg sync.WaitGroup
	tasks := make(chan *models.CategoryMeta, len(cats))
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cat := range tasks {
				s.LoadCategoryContent(ctx, cat)
			}
		}()
	}
	for _, cat := range cats {
		tasks <- cat
	}
	close(tasks)
	wg.Wait()
}

// ReloadCategory 丢弃一个类别的缓存后重新加载。重新抓取整体替换
// 旧列表，不做合并。
func (s *Service) ReloadCategory(ctx context.Context, cat *models.CategoryMeta) []*models.ContentItem {
	if cat == nil {
		return nil
	}
	s.mu.Lock()
	delete(s.cache, cat.ID)
	delete(s.sums, cat.ID)
	s.mu.Unlock()
	return s.LoadCategoryContent(ctx, cat)
}

// IsCategoryLoaded 报告某个类别是否已有缓存结果（含失败吸收出的空列表）。
func (s *Service) IsCategoryLoaded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cache[id]
	return ok
}

// Fingerprint 返回类别内容正文的 SHA-256 指纹；尚未成功抓取过时 ok 为 false。
func (s *Service) Fingerprint(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, ok := s.sums[id]
	return sum, ok
}

// ClearCache 清空内容缓存和指纹表。在途请求不受影响，
// 它们完成后照常写入缓存。
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string][]*models.ContentItem)
	s.sums = make(map[string]string)
}

// resolve 把类别文件的站内相对路径换算成绝对地址。
func (s *Service) resolve(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	ref, err := url.Parse(p)
	if err != nil {
		return s.baseURL.String() + p
	}
	return s.baseURL.ResolveReference(ref).String()
}

func (s *Service) fetch(ctx context.Context, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
