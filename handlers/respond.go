package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope is the uniform response body for mutations and failures.
// Successful reads return the bare document or array instead.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Doc     interface{} `json:"doc,omitempty"`
}

func respondError(c *gin.Context, code int, msg string) {
	c.JSON(code, envelope{Success: false, Message: msg})
}

func respondSuccess(c *gin.Context, msg string, doc interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: msg, Doc: doc})
}

// respondStoreError surfaces a collaborator failure verbatim. Leaking the
// error text at the boundary is the contract here, not an oversight.
func respondStoreError(c *gin.Context, err error) {
	respondError(c, http.StatusInternalServerError, err.Error())
}
