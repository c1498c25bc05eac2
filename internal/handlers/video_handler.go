package handlers

import (
	"mime/multipart"
	"strconv"
	"strings"

	"video-catalog/internal/models"
	"video-catalog/internal/services"
	"video-catalog/internal/uploads"
	"video-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// VideoResource is a video with the public URL of each stored file.
type VideoResource struct {
	*models.Video
	ThumbFileURL   *string `json:"thumb_file_url"`
	BannerFileURL  *string `json:"banner_file_url"`
	TrailerFileURL *string `json:"trailer_file_url"`
	VideoFileURL   *string `json:"video_file_url"`
}

// VideoShaper builds video responses using videos for file URLs.
func VideoShaper(videos *services.VideoService) Shaper[models.Video] {
	return func(v *models.Video) any {
		url := func(field string) *string {
			if u := videos.FileURL(v, field); u != "" {
				return &u
			}
			return nil
		}
		return &VideoResource{
			Video:          v,
			ThumbFileURL:   url(models.FieldThumbFile),
			BannerFileURL:  url(models.FieldBannerFile),
			TrailerFileURL: url(models.FieldTrailerFile),
			VideoFileURL:   url(models.FieldVideoFile),
		}
	}
}

// BindVideo accepts JSON or a multipart form carrying the file fields.
func BindVideo(c *fiber.Ctx) (*services.VideoInput, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return BindJSON[services.VideoInput](c)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	in := &services.VideoInput{
		Title:        formValue(form, "title"),
		Description:  formValue(form, "description"),
		Rating:       formValue(form, "rating"),
		YearLaunched: formInt(form, "year_launched"),
		Duration:     formInt(form, "duration"),
		CategoriesID: formList(form, "categories_id"),
		GenresID:     formList(form, "genres_id"),
	}
	if raw, ok := form.Value["opened"]; ok && len(raw) > 0 {
		opened, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, err
		}
		in.Opened = &opened
	}

	for _, field := range models.VideoFileFields {
		headers := form.File[field]
		if len(headers) == 0 {
			continue
		}
		f, err := uploads.FromMultipart(headers[0])
		if err != nil {
			return nil, err
		}
		if in.Files == nil {
			in.Files = make(map[string]*uploads.File)
		}
		in.Files[field] = f
	}
	return in, nil
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// formInt leaves malformed numbers at zero so validation reports them.
func formInt(form *multipart.Form, key string) int {
	n, _ := strconv.Atoi(formValue(form, key))
	return n
}

// formList reads key[] or key. It returns nil when neither was sent and an
// empty slice when the field was sent blank.
func formList(form *multipart.Form, key string) []string {
	values, ok := form.Value[key+"[]"]
	if !ok {
		values, ok = form.Value[key]
	}
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			ids = append(ids, v)
		}
	}
	return ids
}

type VideoFileHandler struct {
	videos *services.VideoService
	logger *logrus.Logger
}

func NewVideoFileHandler(videos *services.VideoService, logger *logrus.Logger) *VideoFileHandler {
	return &VideoFileHandler{
		videos: videos,
		logger: logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned download URL for a video file
// @Description Generate a time limited URL for one of the video's stored files
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Param field path string true "File field (thumb_file, banner_file, trailer_file, video_file)"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /videos/{id}/files/{field}/presign [get]
func (h *VideoFileHandler) GetPresignedURL(c *fiber.Ctx) error {
	url, err := h.videos.PresignFile(c.Context(), c.Params("id"), c.Params("field"))
	if err != nil {
		return respondError(c, h.logger, err, "Video file", "Failed to generate presigned URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", fiber.Map{
		"presigned_url": url,
		"expires_in":    int(h.videos.PresignExpiry().Seconds()),
	})
}
