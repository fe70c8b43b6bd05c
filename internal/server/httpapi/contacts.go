package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/server/schemas"
)

// contactID validates the path parameter before it reaches the database.
// A malformed id is a client error, not a miss.
func contactID(c *gin.Context) (string, bool) {
	id := c.Param("contactId")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id format"})
		return "", false
	}
	return id, true
}

// positiveIntQuery parses a positive integer query parameter; anything
// missing, unparseable, or < 1 yields zero and the service applies its
// default.
func positiveIntQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return 0
	}
	return v
}

func (s *Server) handleListContacts(c *gin.Context) {
	var favorite *bool
	if q, ok := c.GetQuery("favorite"); ok {
		// only the literals pass; a present-but-empty value is rejected too
		switch strings.ToLower(q) {
		case "true":
			t := true
			favorite = &t
		case "false":
			f := false
			favorite = &f
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid favorite value"})
			return
		}
	}

	identity := identityFrom(c)
	result, err := s.contacts.List(c.Request.Context(), identity.ID,
		positiveIntQuery(c, "page"), positiveIntQuery(c, "limit"), favorite)
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	identity := identityFrom(c)
	contact, err := s.contacts.Get(c.Request.Context(), identity.ID, id)
	if err != nil {
		s.respondContactError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) handleCreateContact(c *gin.Context) {
	var req schemas.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if errs := req.Validate(); !errs.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"message": errs.Message()})
		return
	}

	favorite := false
	if req.Favorite != nil {
		favorite = *req.Favorite
	}

	identity := identityFrom(c)
	contact, err := s.contacts.Create(c.Request.Context(), identity.ID, req.Name, req.Email, req.Phone, favorite)
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (s *Server) handleUpdateContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	var req schemas.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Body must have at least one field"})
		return
	}
	if errs := req.Validate(); !errs.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"message": errs.Message()})
		return
	}

	identity := identityFrom(c)
	contact, err := s.contacts.Update(c.Request.Context(), identity.ID, id, contacts.Update{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		s.respondContactError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) handleDeleteContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	identity := identityFrom(c)
	contact, err := s.contacts.Delete(c.Request.Context(), identity.ID, id)
	if err != nil {
		s.respondContactError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) handleSetFavorite(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	var req schemas.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Body must contain 'favorite' field with a boolean value"})
		return
	}
	if errs := req.Validate(); !errs.OK() {
		c.JSON(http.StatusBadRequest, gin.H{"message": errs.Message()})
		return
	}

	identity := identityFrom(c)
	contact, err := s.contacts.SetFavorite(c.Request.Context(), identity.ID, id, *req.Favorite)
	if err != nil {
		s.respondContactError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// respondContactError keeps "absent" and "someone else's" identical on the
// wire: both are a plain 404.
func (s *Server) respondContactError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
		return
	}
	s.serverError(c, err)
}
