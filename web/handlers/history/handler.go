package history

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"ponto.app/ponto/core"
	"ponto.app/ponto/model"
	"ponto.app/ponto/utils"
	"ponto.app/ponto/web/common"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Endpoint struct {
	base *common.Handler
}

func Register(r *gin.RouterGroup, h *common.Handler) {
	endpoint := &Endpoint{base: h}
	r.GET("/history", endpoint.List)
	r.GET("/history/workbook", endpoint.Workbook)
	r.GET("/history/:day/export", endpoint.Export)
	r.DELETE("/history", endpoint.Delete)
}

type DayDTO struct {
	Day     model.DayKey `json:"day"`
	Date    string       `json:"date"`
	Times   []string     `json:"times"`
	Worked  string       `json:"worked"`
	Balance string       `json:"balance"`
}

type DeleteDTO struct {
	Days []common.DateOnly `json:"days" binding:"required_without=All"`
	All  bool              `json:"all"`
}

func (ep *Endpoint) List(c *gin.Context) {
	ctx := c.Request.Context()

	var overview []core.DayOverview
	err := ep.base.Do(func(e *core.Engine) error {
		var err error
		overview, err = e.HistoryOverview(ctx)
		return err
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	days := utils.Map(overview, func(d core.DayOverview) DayDTO {
		return DayDTO{
			Day:     d.Day,
			Date:    d.Date,
			Times:   d.Times,
			Worked:  core.FormatHoursMinutes(d.Worked),
			Balance: core.FormatBalance(d.Balance),
		}
	})
	c.JSON(http.StatusOK, common.NewSearchResponse(days, int64(len(days))))
}

func (ep *Endpoint) Export(c *gin.Context) {
	day, err := model.ParseDayKey(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	ctx := c.Request.Context()
	var text string
	if err := ep.base.Do(func(e *core.Engine) error {
		var err error
		text, err = e.ExportHistoryDay(ctx, day)
		return err
	}); err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", core.ExportFileName(day)))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (ep *Endpoint) Delete(c *gin.Context) {
	var body DeleteDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	ctx := c.Request.Context()
	if err := ep.base.Do(func(e *core.Engine) error {
		if body.All {
			return e.ClearHistory(ctx)
		}
		return e.DeleteHistoryDays(ctx, utils.Map(body.Days, func(d common.DateOnly) model.DayKey { return d.DayKey }))
	}); err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (ep *Endpoint) Workbook(c *gin.Context) {
	ctx := c.Request.Context()

	var data []byte
	err := ep.base.Do(func(e *core.Engine) error {
		f, err := e.Workbook(ctx, nil)
		if err != nil {
			return err
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		data = buf.Bytes()
		return nil
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ponto_eletronico.xlsx"`)
	c.Data(http.StatusOK, workbookContentType, data)
}
