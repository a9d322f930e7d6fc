package adminController

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/models"
	"github.com/arushi-dev/vastra-api/services"
)

type reviewReturnInput struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// GetAllReturns lists return requests for the back office. ?stage=pending
// narrows to requests awaiting first-stage review, ?stage=inspection to
// approved requests awaiting the final decision.
// GET /admin/returns
func GetAllReturns(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Order").Preload("Order.Product")

		switch c.Query("stage") {
		case "pending":
			query = query.Where("approved IS NULL")
		case "inspection":
			query = query.Where("approved = ? AND final_approved IS NULL", true)
		}

		var returns []models.Return
		if err := query.Order("created_at DESC").Find(&returns).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch returns"})
			return
		}
		c.JSON(http.StatusOK, returns)
	}
}

// ApproveReturn records the first-stage decision. Approval books the reverse
// pickup with the courier.
// POST /admin/returns/:id/approve
func ApproveReturn(svc *services.ReturnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid return ID"})
			return
		}

		var input reviewReturnInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		ret, svcErr := svc.Approve(c.Request.Context(), uint(id), input.Approve, input.Note)
		if svcErr != nil {
			c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
			return
		}
		c.JSON(http.StatusOK, ret)
	}
}

// FinalApproveReturn records the post-inspection decision. Final approval
// credits the customer or ships the exchange replacement.
// POST /admin/returns/:id/final-approve
func FinalApproveReturn(svc *services.ReturnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid return ID"})
			return
		}

		var input reviewReturnInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		ret, svcErr := svc.FinalApprove(c.Request.Context(), uint(id), input.Approve, input.Note)
		if svcErr != nil {
			c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
			return
		}
		c.JSON(http.StatusOK, ret)
	}
}
