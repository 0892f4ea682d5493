package v1

import (
	"io"
	"net/http"

	"github.com/AbdulBasithMohammed/CVPro/internal/delivery/http/response"
	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxImageUpload caps resume image uploads at 5 MB before decoding.
const maxImageUpload = 5 << 20

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(public *gin.RouterGroup, protected *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	// Profile images are embedded by <img> tags, so the fetch is public.
	public.GET("/resumes/images/:id", handler.GetImage)

	resumes := protected.Group("/resumes")
	{
		resumes.POST("", handler.Create)
		resumes.GET("", handler.List)
		resumes.GET("/:id", handler.Get)
		resumes.PUT("/:id", handler.Update)
		resumes.DELETE("/:id", handler.Delete)
		resumes.POST("/:id/image", handler.UploadImage)
		resumes.POST("/parse", handler.Parse)
	}
}

type ResumeRequest struct {
	Title   string               `json:"title" binding:"required,min=1,max=200"`
	Email   string               `json:"email" binding:"required,email"`
	Details domain.ResumeDetails `json:"details"`
}

// Create godoc
// @Summary      Create Resume
// @Description  Create a resume owned by the authenticated user.
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        resume  body      ResumeRequest  true  "Resume document"
// @Success      201     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Security     BearerAuth
// @Router       /resumes [post]
func (h *ResumeHandler) Create(c *gin.Context) {
	var req ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	resume, err := h.resumeUC.Create(c.Request.Context(), &domain.Resume{
		Title:   req.Title,
		Email:   req.Email,
		Details: req.Details,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Resume created", resume)
}

// List godoc
// @Summary      List Resumes
// @Description  List the authenticated user's resumes. Pass ?email= to look up by email instead.
// @Tags         resumes
// @Produce      json
// @Param        email  query     string  false  "Filter by owner email"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Security     BearerAuth
// @Router       /resumes [get]
func (h *ResumeHandler) List(c *gin.Context) {
	var (
		resumes []domain.Resume
		err     error
	)
	if email := c.Query("email"); email != "" {
		resumes, err = h.resumeUC.ListByEmail(c.Request.Context(), email)
	} else {
		resumes, err = h.resumeUC.ListMine(c.Request.Context())
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resumes retrieved", resumes)
}

// Get godoc
// @Summary      Get Resume
// @Description  Fetch a single resume by ID. Owners and admins only.
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /resumes/{id} [get]
func (h *ResumeHandler) Get(c *gin.Context) {
	resume, err := h.resumeUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume retrieved", resume)
}

// Update godoc
// @Summary      Update Resume
// @Description  Replace a resume's title, email and details. Owners and admins only.
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id      path      string         true  "Resume ID"
// @Param        resume  body      ResumeRequest  true  "Resume document"
// @Success      200     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Security     BearerAuth
// @Router       /resumes/{id} [put]
func (h *ResumeHandler) Update(c *gin.Context) {
	var req ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	resume := &domain.Resume{
		ID:      c.Param("id"),
		Title:   req.Title,
		Email:   req.Email,
		Details: req.Details,
	}
	if err := h.resumeUC.Update(c.Request.Context(), resume); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume updated", nil)
}

// Delete godoc
// @Summary      Delete Resume
// @Description  Delete a resume. Owners and admins only.
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *gin.Context) {
	if err := h.resumeUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume deleted", nil)
}

// UploadImage godoc
// @Summary      Upload Resume Image
// @Description  Attach a profile image to a resume. PNG and JPEG are accepted; large images are downscaled.
// @Tags         resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "Resume ID"
// @Param        image  formData  file    true  "Image file"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Security     BearerAuth
// @Router       /resumes/{id}/image [post]
func (h *ResumeHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.Error(apperror.BadRequest("Image file is required"))
		return
	}
	if file.Size > maxImageUpload {
		c.Error(apperror.BadRequest("Image must be smaller than 5MB"))
		return
	}

	f, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageUpload))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	imageID, err := h.resumeUC.AttachImage(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Image uploaded", gin.H{
		"image_id": imageID,
	})
}

// GetImage godoc
// @Summary      Get Resume Image
// @Description  Serve a stored resume image by ID.
// @Tags         resumes
// @Produce      image/png
// @Param        id   path  string  true  "Image ID"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /resumes/images/{id} [get]
func (h *ResumeHandler) GetImage(c *gin.Context) {
	img, err := h.resumeUC.GetImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, img.ContentType, img.Data)
}

type ParseResumeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Parse godoc
// @Summary      Parse Resume Text
// @Description  Extract a structured resume from free text using the AI parsing service.
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        request  body      ParseResumeRequest  true  "Raw resume text"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Security     BearerAuth
// @Router       /resumes/parse [post]
func (h *ResumeHandler) Parse(c *gin.Context) {
	var req ParseResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	parsed, err := h.resumeUC.Parse(c.Request.Context(), req.Text)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume parsed", parsed)
}
