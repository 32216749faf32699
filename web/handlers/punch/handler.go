package punch

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"ponto.app/ponto/core"
	"ponto.app/ponto/model"
	"ponto.app/ponto/web/common"
)

type Endpoint struct {
	base *common.Handler
}

func Register(r *gin.RouterGroup, h *common.Handler) {
	endpoint := &Endpoint{base: h}
	r.GET("/punches", endpoint.List)
	r.POST("/punches", endpoint.Add)
	r.PUT("/punches/:index", endpoint.Update)
	r.DELETE("/punches/:index", endpoint.Delete)

	r.GET("/summary", endpoint.Summary)
	r.GET("/export", endpoint.Export)
}

func (ep *Endpoint) List(c *gin.Context) {
	ctx := c.Request.Context()

	var res DayDTO
	err := ep.base.Do(func(e *core.Engine) error {
		day, err := e.Today(ctx)
		if err != nil {
			return err
		}
		events, err := e.ListTodayEvents(ctx)
		if err != nil {
			return err
		}
		next, err := e.NextLabel(ctx)
		if err != nil {
			return err
		}

		res = DayDTO{Day: day, Next: next.String(), Events: make([]PunchDTO, len(events))}
		for i, ev := range events {
			res.Events[i] = toPunchDTO(i, ev)
		}
		return nil
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(res))
}

func (ep *Endpoint) Add(c *gin.Context) {
	var body AddPunchDTO
	// an empty body records an automatic punch
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}
	}

	ctx := c.Request.Context()
	var res PunchDTO
	err := ep.base.Do(func(e *core.Engine) error {
		ev, err := e.AddPunch(ctx, model.ParseLabel(body.Label), body.Description)
		if err != nil {
			return err
		}
		events, err := e.ListTodayEvents(ctx)
		if err != nil {
			return err
		}
		res = toPunchDTO(len(events)-1, ev)
		return nil
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(res))
}

func (ep *Endpoint) Update(c *gin.Context) {
	index, ok := common.ParamIndex(c, "index")
	if !ok {
		return
	}

	var body EditPunchDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	ctx := c.Request.Context()
	var res PunchDTO
	err := ep.base.Do(func(e *core.Engine) error {
		if err := e.EditPunch(ctx, index, body.Timestamp, body.Description); err != nil {
			return err
		}
		events, err := e.ListTodayEvents(ctx)
		if err != nil {
			return err
		}
		res = toPunchDTO(index, events[index])
		return nil
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(res))
}

func (ep *Endpoint) Delete(c *gin.Context) {
	index, ok := common.ParamIndex(c, "index")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := ep.base.Do(func(e *core.Engine) error {
		return e.DeletePunch(ctx, index)
	}); err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (ep *Endpoint) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	var res SummaryDTO
	err := ep.base.Do(func(e *core.Engine) error {
		day, err := e.Today(ctx)
		if err != nil {
			return err
		}
		s, err := e.Summary(ctx)
		if err != nil {
			return err
		}
		res = toSummaryDTO(day, s)
		return nil
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(res))
}

func (ep *Endpoint) Export(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		day  model.DayKey
		text string
	)
	err := ep.base.Do(func(e *core.Engine) error {
		var err error
		if day, err = e.Today(ctx); err != nil {
			return err
		}
		text, err = e.ExportToday(ctx)
		return err
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", core.ExportFileName(day)))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
