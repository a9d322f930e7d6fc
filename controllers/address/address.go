package addressControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arushi-dev/vastra-api/middleware"
	"github.com/arushi-dev/vastra-api/services"
)

type createAddressInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1" binding:"required"`
	Line2   string `json:"line2"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
}

// CreateAddress saves a shipping address once the pincode passes the
// serviceability check.
// POST /user/addresses and /guest/addresses
func CreateAddress(svc *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input createAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		address, svcErr := svc.CreateAddress(c.Request.Context(), services.CreateAddressInput{
			UserID:  middleware.UserID(c),
			Name:    input.Name,
			Email:   input.Email,
			Phone:   input.Phone,
			Line1:   input.Line1,
			Line2:   input.Line2,
			City:    input.City,
			State:   input.State,
			Pincode: input.Pincode,
		})
		if svcErr != nil {
			c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// ListAddresses returns the caller's saved addresses.
// GET /user/addresses
func ListAddresses(svc *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		addresses, svcErr := svc.ListAddresses(c.Request.Context(), middleware.UserID(c))
		if svcErr != nil {
			c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// DeleteAddress removes one of the caller's addresses.
// DELETE /user/addresses/:id
func DeleteAddress(svc *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
			return
		}

		if svcErr := svc.DeleteAddress(c.Request.Context(), middleware.UserID(c), uint(id)); svcErr != nil {
			c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}
