package v1

import (
	"net/http"

	"github.com/AbdulBasithMohammed/CVPro/internal/delivery/http/response"
	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(public *gin.RouterGroup, admin *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	publicAdmin := public.Group("/admin")
	{
		publicAdmin.POST("/register", handler.Register)
		publicAdmin.POST("/login", handler.Login)
	}

	{
		admin.GET("/users", handler.ListUsers)
		admin.GET("/resumes", handler.ListResumes)
		admin.GET("/login-logs", handler.ListLoginLogs)
		admin.DELETE("/users/:id", handler.DeleteUser)
	}
}

// Register godoc
// @Summary      Admin Registration
// @Description  Register a new admin account.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Router       /admin/register [post]
func (h *AdminHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	admin, err := h.adminUC.Register(c.Request.Context(), domain.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Admin registered successfully", gin.H{
		"admin": admin,
	})
}

// Login godoc
// @Summary      Admin Login
// @Description  Login to the admin dashboard. Non-admin accounts are rejected.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, admin, err := h.adminUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"admin": admin,
	})
}

// ListUsers godoc
// @Summary      List Users
// @Description  List all user accounts with their resume counts.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUC.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Users retrieved", users)
}

// ListResumes godoc
// @Summary      List All Resumes
// @Description  List every resume in the system for the admin dashboard.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/resumes [get]
func (h *AdminHandler) ListResumes(c *gin.Context) {
	resumes, err := h.adminUC.ListResumes(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resumes retrieved", resumes)
}

// ListLoginLogs godoc
// @Summary      List Login Logs
// @Description  List recorded login attempts, newest first.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/login-logs [get]
func (h *AdminHandler) ListLoginLogs(c *gin.Context) {
	logs, err := h.adminUC.ListLoginLogs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login logs retrieved", logs)
}

// DeleteUser godoc
// @Summary      Delete User
// @Description  Delete a user account and all of their resumes.
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminUC.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted", nil)
}
