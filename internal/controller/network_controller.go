package controller

import (
	"creai_edu_backend/internal/service"
	"creai_edu_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NetworkController 网络实验室接口，供课程中的交互组件调用
type NetworkController struct {
	NetworkService *service.NetworkService
}

func NewNetworkController(networkService *service.NetworkService) *NetworkController {
	return &NetworkController{NetworkService: networkService}
}

// AnalyzeURLRequest
// swagger:model AnalyzeURLRequest
type AnalyzeURLRequest struct {
	URL string `json:"url"`
}

// withFallback 上游失败时返回 500 并附带前端可直接使用的备用数据
func withFallback(ctx *gin.Context, err error, fallback gin.H) {
	var de *util.DomainError
	if !errors.Is(err, util.ErrUpstream) || !errors.As(err, &de) {
		util.HandleError(ctx, err)
		return
	}
	resp := util.Response{Success: false, Message: de.Message}
	if len(fallback) > 0 {
		resp.Meta = fallback
	}
	ctx.JSON(http.StatusInternalServerError, resp)
}

// PublicIP godoc
// @Summary 获取服务器公网 IP
// @Description 通过 ipify 查询；失败时 meta.fallback 为 RFC 5737 示例地址
// @Tags network
// @Produce json
// @Success 200 {object} util.Response{data=service.PublicIPResult}
// @Failure 500 {object} util.Response
// @Router /api/network/public-ip [get]
func (c *NetworkController) PublicIP(ctx *gin.Context) {
	result, err := c.NetworkService.PublicIP(ctx.Request.Context())
	if err != nil {
		withFallback(ctx, err, gin.H{"fallback": service.FallbackPublicIP})
		return
	}
	util.Success(ctx, result)
}

// AnalyzeURL godoc
// @Summary 分析 URL
// @Description 解析协议、域名、端口并用 HEAD 请求探测可达性
// @Tags network
// @Accept json
// @Produce json
// @Param request body AnalyzeURLRequest true "URL"
// @Success 200 {object} util.Response{data=service.URLAnalysis}
// @Failure 400 {object} util.Response "URL 缺失或无效"
// @Router /api/network/analyze-url [post]
func (c *NetworkController) AnalyzeURL(ctx *gin.Context) {
	var req AnalyzeURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(ctx, []util.FieldError{{Field: "url", Message: "URL requerida"}})
		return
	}
	analysis, err := c.NetworkService.AnalyzeURL(ctx.Request.Context(), req.URL)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, analysis)
}

// IPExercise godoc
// @Summary 生成 IP 分类练习
// @Tags network
// @Produce json
// @Success 200 {object} util.Response{data=service.IPExercise}
// @Failure 500 {object} util.Response "meta.fallbackExercise 为静态题目"
// @Router /api/network/ip-exercise [get]
func (c *NetworkController) IPExercise(ctx *gin.Context) {
	exercise, err := c.NetworkService.IPExercise(ctx.Request.Context())
	if err != nil {
		withFallback(ctx, util.NewError(util.ErrUpstream, "No se pudo generar el ejercicio"), gin.H{
			"fallbackExercise": service.StaticIPExercise(),
		})
		return
	}
	util.Success(ctx, exercise)
}

// DNSExercise godoc
// @Summary 生成连通性练习
// @Description 并发探测随机热门域名的 HTTPS 与 HTTP
// @Tags network
// @Produce json
// @Success 200 {object} util.Response{data=service.DNSExercise}
// @Router /api/network/dns-exercise [get]
func (c *NetworkController) DNSExercise(ctx *gin.Context) {
	exercise, err := c.NetworkService.DNSExercise(ctx.Request.Context())
	if err != nil {
		withFallback(ctx, err, nil)
		return
	}
	util.Success(ctx, exercise)
}

// InternetStats godoc
// @Summary 互联网近似统计
// @Tags network
// @Produce json
// @Success 200 {object} util.Response{data=service.InternetStatsResult}
// @Router /api/network/internet-stats [get]
func (c *NetworkController) InternetStats(ctx *gin.Context) {
	util.Success(ctx, c.NetworkService.InternetStats())
}

// ClassifyIP godoc
// @Summary 判断 IP 为公网或私网
// @Tags network
// @Produce json
// @Param ip query string true "IPv4 或 IPv6 地址"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/network/classify-ip [get]
func (c *NetworkController) ClassifyIP(ctx *gin.Context) {
	ip := ctx.Query("ip")
	kind, err := service.ClassifyIP(ip)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"ip": ip, "type": kind})
}
