package handler

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "mensaje": "JSON inválido: " + err.Error()})
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"mensaje": "Datos inválidos",
			"campos":  fields,
		})
		return false
	}
	return true
}

// bindQuery binds and validates query-string filters.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "mensaje": "Parámetros inválidos: " + err.Error()})
		return false
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "mensaje": "Parámetros inválidos"})
		return false
	}
	return true
}

// respondData writes the success envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondError maps any error to the error envelope, merging the extra
// fields an APIError carries (e.g. stock_disponible).
func respondError(c *gin.Context, err error) {
	apiErr := apierror.From(err)
	if apiErr.Status >= http.StatusInternalServerError {
		c.Error(err) // delega al ErrorHandler para log + respuesta
		return
	}
	body := gin.H{"success": false, "mensaje": apiErr.Mensaje}
	for k, v := range apiErr.Extra {
		body[k] = v
	}
	c.JSON(apiErr.Status, body)
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "mensaje": "ID inválido"})
		return 0, false
	}
	return uint(id), true
}
