package service

import (
	"context"
	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/util"
	"creai_edu_backend/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// FallbackPublicIP RFC 5737 文档地址，ipify 不可用时返回给前端
	FallbackPublicIP = "203.0.113.1"

	publicIPCacheKey = "network:public-ip"
	probeUserAgent   = "CreaiCoders-Learning-Platform/1.0"
	analyzeTimeout   = 5 * time.Second
	probeTimeout     = 3 * time.Second
)

const (
	IPPublic  = "publica"
	IPPrivate = "privada"
)

var popularDomains = []string{
	"google.com", "github.com", "stackoverflow.com",
	"mozilla.org", "wikipedia.org", "microsoft.com",
}

type PublicIPResult struct {
	PublicIP  string    `json:"publicIP"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Cached    bool      `json:"cached"`
}

type URLSecurity struct {
	Level          string `json:"level"`
	Recommendation string `json:"recommendation"`
}

type URLAnalysis struct {
	URL          string      `json:"url"`
	Protocol     string      `json:"protocol"`
	Domain       string      `json:"domain"`
	Port         int         `json:"port"`
	IsSecure     bool        `json:"isSecure"`
	IsOnline     bool        `json:"isOnline"`
	StatusCode   *int        `json:"statusCode"`
	ResponseTime *int64      `json:"responseTime"`
	Security     URLSecurity `json:"security"`
	Timestamp    time.Time   `json:"timestamp"`
}

type IPQuestion struct {
	IP          string `json:"ip"`
	Type        string `json:"type"`
	Explanation string `json:"explanation,omitempty"`
}

type IPExercise struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	RealData    *IPRealData  `json:"realData,omitempty"`
	Questions   []IPQuestion `json:"questions"`
	Points      int          `json:"points,omitempty"`
	Generated   time.Time    `json:"generated"`
	Source      string       `json:"source,omitempty"`
}

type IPRealData struct {
	YourPublicIP string `json:"yourPublicIP"`
	Note         string `json:"note"`
}

// StaticIPExercise ipify 不可用时前端使用的静态题目
func StaticIPExercise() IPExercise {
	return IPExercise{
		ID:    "static-ip-fallback",
		Title: "Clasificación de Direcciones IP",
		Questions: []IPQuestion{
			{IP: "192.168.1.1", Type: IPPrivate},
			{IP: "8.8.8.8", Type: IPPublic},
		},
	}
}

type ProbeResult struct {
	URL          string `json:"url"`
	Accessible   bool   `json:"accessible"`
	StatusCode   *int   `json:"statusCode,omitempty"`
	ResponseTime *int64 `json:"responseTime,omitempty"`
	Error        string `json:"error,omitempty"`
	Secure       bool   `json:"secure"`
}

type ChoiceQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
	Points   int      `json:"points"`
}

type DNSExercise struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Domain      string           `json:"domain"`
	TestResults []ProbeResult    `json:"testResults"`
	Questions   []ChoiceQuestion `json:"questions"`
	Tested      time.Time        `json:"tested"`
	RealTime    bool             `json:"realTime"`
}

type InternetStats struct {
	Timestamp         time.Time `json:"timestamp"`
	Year              int       `json:"year"`
	EstimatedUsers    int       `json:"estimatedUsers"`
	EstimatedWebsites int       `json:"estimatedWebsites"`
	EmailsSentToday   int       `json:"emailsSentToday"`
	SearchesToday     int       `json:"searchesToday"`
	DataTraffic       int       `json:"dataTraffic"`
	ActiveDevices     int       `json:"activeDevices"`
	Source            string    `json:"source"`
	Disclaimer        string    `json:"disclaimer"`
}

type InternetStatsResult struct {
	Stats     InternetStats     `json:"stats"`
	Formatted map[string]string `json:"formatted"`
}

// NetworkService 网络实验室接口：公网 IP、URL 分析、IP/DNS 练习与统计
type NetworkService struct {
	PublicIPURL string
	Domains     []string
	Redis       *redis.Client
	CacheTTL    time.Duration

	httpClient *http.Client
	intN       func(n int) int
	float      func() float64
	now        func() time.Time
}

func NewNetworkService(cfg *config.NetworkConfig, rdb *redis.Client, cacheTTL time.Duration) *NetworkService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = analyzeTimeout
	}
	return &NetworkService{
		PublicIPURL: cfg.PublicIPURL,
		Domains:     popularDomains,
		Redis:       rdb,
		CacheTTL:    cacheTTL,
		httpClient:  &http.Client{Timeout: timeout},
		intN:        rand.IntN,
		float:       rand.Float64,
		now:         time.Now,
	}
}

// PublicIP 查询 ipify，启用 Redis 时缓存结果
func (s *NetworkService) PublicIP(ctx context.Context) (*PublicIPResult, error) {
	if s.Redis != nil {
		if ip, err := s.Redis.Get(ctx, publicIPCacheKey).Result(); err == nil {
			return &PublicIPResult{PublicIP: ip, Timestamp: s.now(), Source: "ipify.org", Cached: true}, nil
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("public ip cache read failed", zap.Error(err))
		}
	}

	ip, err := s.fetchPublicIP(ctx)
	if err != nil {
		logger.Log.Error("Error fetching public IP", zap.String("url", s.PublicIPURL), zap.Error(err))
		return nil, util.NewError(util.ErrUpstream, "No se pudo obtener la IP pública")
	}

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, publicIPCacheKey, ip, s.CacheTTL).Err(); err != nil {
			logger.Log.Warn("public ip cache write failed", zap.Error(err))
		}
	}
	return &PublicIPResult{PublicIP: ip, Timestamp: s.now(), Source: "ipify.org"}, nil
}

func (s *NetworkService) fetchPublicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.PublicIPURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ipify returned %d", resp.StatusCode)
	}
	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode ipify response: %w", err)
	}
	if _, err := netip.ParseAddr(body.IP); err != nil {
		return "", fmt.Errorf("ipify returned invalid ip %q", body.IP)
	}
	return body.IP, nil
}

// AnalyzeURL 解析 URL 并发送 HEAD 请求探测可达性，探测失败不算错误
func (s *NetworkService) AnalyzeURL(ctx context.Context, raw string) (*URLAnalysis, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, util.NewValidationError([]util.FieldError{{Field: "url", Message: "URL requerida"}})
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return nil, util.NewValidationError([]util.FieldError{{Field: "url", Message: "URL inválida"}})
	}

	secure := u.Scheme == "https"
	port := 80
	if secure {
		port = 443
	}
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}

	analysis := &URLAnalysis{
		URL:       raw,
		Protocol:  u.Scheme,
		Domain:    u.Hostname(),
		Port:      port,
		IsSecure:  secure,
		Security:  securityFor(secure),
		Timestamp: s.now(),
	}

	if u.Scheme == "http" || u.Scheme == "https" {
		probe := s.probe(ctx, raw, analyzeTimeout)
		analysis.IsOnline = probe.Accessible
		analysis.StatusCode = probe.StatusCode
		analysis.ResponseTime = probe.ResponseTime
		if probe.Error != "" {
			logger.Log.Debug("URL no accesible", zap.String("url", raw), zap.String("error", probe.Error))
		}
	}
	return analysis, nil
}

func securityFor(secure bool) URLSecurity {
	if secure {
		return URLSecurity{Level: "alto", Recommendation: "Conexión segura (HTTPS)"}
	}
	return URLSecurity{Level: "bajo", Recommendation: "Considera usar HTTPS para mayor seguridad"}
}

func (s *NetworkService) probe(ctx context.Context, target string, timeout time.Duration) ProbeResult {
	result := ProbeResult{URL: target, Secure: strings.HasPrefix(target, "https")}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	req.Header.Set("User-Agent", probeUserAgent)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	resp.Body.Close()

	elapsed := time.Since(start).Milliseconds()
	status := resp.StatusCode
	result.StatusCode = &status
	result.ResponseTime = &elapsed
	result.Accessible = status >= 200 && status < 300
	return result
}

// ClassifyIP 按 RFC 1918 判断公网或私网地址
func ClassifyIP(ip string) (string, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "", util.NewValidationError([]util.FieldError{{Field: "ip", Message: "Dirección IP inválida"}})
	}
	if addr.IsPrivate() {
		return IPPrivate, nil
	}
	return IPPublic, nil
}

// IPExercise 以真实公网 IP 加随机私网地址生成分类练习
func (s *NetworkService) IPExercise(ctx context.Context) (*IPExercise, error) {
	public, err := s.PublicIP(ctx)
	if err != nil {
		return nil, err
	}

	questions := []IPQuestion{
		{
			IP:          public.PublicIP,
			Type:        IPPublic,
			Explanation: "Esta es tu dirección IP pública real, asignada por tu proveedor de Internet",
		},
		{
			IP:          fmt.Sprintf("192.168.%d.%d", s.intN(256), s.intN(256)),
			Type:        IPPrivate,
			Explanation: "Rango 192.168.x.x - Red privada clase C",
		},
		{
			IP:          fmt.Sprintf("10.%d.%d.%d", s.intN(256), s.intN(256), s.intN(256)),
			Type:        IPPrivate,
			Explanation: "Rango 10.x.x.x - Red privada clase A",
		},
		{
			IP:          fmt.Sprintf("172.%d.%d.%d", 16+s.intN(16), s.intN(256), s.intN(256)),
			Type:        IPPrivate,
			Explanation: "Rango 172.16.x.x - 172.31.x.x - Red privada clase B",
		},
		{
			IP:          s.randomPublicIP(),
			Type:        IPPublic,
			Explanation: "Dirección IP pública - accesible desde Internet",
		},
	}
	for i := len(questions) - 1; i > 0; i-- {
		j := s.intN(i + 1)
		questions[i], questions[j] = questions[j], questions[i]
	}

	now := s.now()
	return &IPExercise{
		ID:          "dynamic-ip-" + strconv.FormatInt(now.UnixMilli(), 10),
		Title:       "Clasificación de Direcciones IP Reales",
		Description: "Clasifica las siguientes direcciones IP reales como públicas o privadas",
		RealData: &IPRealData{
			YourPublicIP: public.PublicIP,
			Note:         "Esta es tu IP pública real obtenida de ipify.org",
		},
		Questions: questions,
		Points:    25,
		Generated: now,
		Source:    "ipify.org + algoritmo dinámico",
	}, nil
}

// randomPublicIP 跳过私网、回环、组播等保留地址
func (s *NetworkService) randomPublicIP() string {
	for {
		addr := netip.AddrFrom4([4]byte{
			byte(1 + s.intN(223)), byte(s.intN(256)), byte(s.intN(256)), byte(1 + s.intN(254)),
		})
		if addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsMulticast() || addr.IsUnspecified() {
			continue
		}
		return addr.String()
	}
}

// DNSExercise 并发探测随机热门域名的 HTTPS 与 HTTP 可达性
func (s *NetworkService) DNSExercise(ctx context.Context) (*DNSExercise, error) {
	if len(s.Domains) == 0 {
		return nil, util.NewError(util.ErrUpstream, "Error generando ejercicio DNS")
	}
	domain := s.Domains[s.intN(len(s.Domains))]
	targets := []string{"https://" + domain, "http://" + domain}
	results := make([]ProbeResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		g.Go(func() error {
			results[i] = s.probe(gctx, target, probeTimeout)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Log.Error("Error in DNS exercise", zap.String("domain", domain), zap.Error(err))
		return nil, util.NewError(util.ErrUpstream, "Error generando ejercicio DNS")
	}

	now := s.now()
	return &DNSExercise{
		ID:          "dns-real-" + strconv.FormatInt(now.UnixMilli(), 10),
		Title:       "Análisis de Conectividad: " + domain,
		Description: "Analiza los resultados reales de conectividad para " + domain,
		Domain:      domain,
		TestResults: results,
		Questions: []ChoiceQuestion{
			{
				Question: fmt.Sprintf("¿Cuál es la diferencia principal entre HTTP y HTTPS para %s?", domain),
				Options: []string{
					"HTTP es más rápido",
					"HTTPS proporciona cifrado y seguridad",
					"No hay diferencia",
					"HTTP funciona mejor",
				},
				Correct: 1,
				Points:  10,
			},
			{
				Question: "Basándote en los resultados, ¿qué protocolo recomendarías?",
				Options: []string{
					"HTTP por simplicidad",
					"HTTPS por seguridad",
					"Cualquiera de los dos",
					"Depende del navegador",
				},
				Correct: 1,
				Points:  15,
			},
		},
		Tested:   now,
		RealTime: true,
	}, nil
}

// InternetStats 教学用的近似统计，单位见 formatted 文案
func (s *NetworkService) InternetStats() InternetStatsResult {
	now := s.now()
	estimate := func(base, spread float64) int {
		return int(math.Floor(base + s.float()*spread))
	}
	stats := InternetStats{
		Timestamp:         now,
		Year:              now.Year(),
		EstimatedUsers:    estimate(4.9, 0.5),
		EstimatedWebsites: estimate(1.8, 0.2),
		EmailsSentToday:   estimate(300, 50),
		SearchesToday:     estimate(8.5, 1),
		DataTraffic:       estimate(4.8, 0.5),
		ActiveDevices:     estimate(50, 10),
		Source:            "Estimaciones basadas en tendencias actuales",
		Disclaimer:        "Datos aproximados para fines educativos",
	}
	return InternetStatsResult{
		Stats: stats,
		Formatted: map[string]string{
			"users":    fmt.Sprintf("%d mil millones de usuarios", stats.EstimatedUsers),
			"websites": fmt.Sprintf("%d mil millones de sitios web", stats.EstimatedWebsites),
			"emails":   fmt.Sprintf("%d mil millones de emails hoy", stats.EmailsSentToday),
			"searches": fmt.Sprintf("%d mil millones de búsquedas hoy", stats.SearchesToday),
			"traffic":  fmt.Sprintf("%d zettabytes de tráfico anual", stats.DataTraffic),
			"devices":  fmt.Sprintf("%d mil millones de dispositivos activos", stats.ActiveDevices),
		},
	}
}
