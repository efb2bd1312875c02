package admin

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/respond"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

type uploadMediaRequest struct {
	RawB64Image string `json:"rawB64Image"`
	Folder      string `json:"folder"`
	ImageName   string `json:"imageName"`
	Alt         string `json:"alt"`
}

func (ur *uploadMediaRequest) Bind(r *http.Request) error {
	if ur.RawB64Image == "" {
		return fmt.Errorf("image payload is required")
	}
	return nil
}

type mediaResponse struct {
	Id    int                 `json:"id"`
	Media *entity.MediaInsert `json:"media"`
}

func (m *mediaResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// uploadMedia converts a base64 payload into webp full size plus thumbnail,
// uploads both to the bucket and records the media row.
func (s *Server) uploadMedia(w http.ResponseWriter, r *http.Request) {
	req := &uploadMediaRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = s.bucket.GetBaseFolder()
	}

	media, err := s.bucket.UploadContentImage(r.Context(), req.RawB64Image, folder, req.ImageName)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	media.Alt = req.Alt

	id, err := s.rep.Media().AddMedia(r.Context(), media)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &mediaResponse{Id: id, Media: media})
}

func (s *Server) deleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Media().DeleteMediaById(r.Context(), id); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

type mediaListResponse struct {
	Media      []entity.MediaFull `json:"media"`
	TotalCount int                `json:"totalCount"`
}

func (m *mediaListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listMedia(w http.ResponseWriter, r *http.Request) {
	limit, offset, orderFactor := paging(r)

	media, total, err := s.rep.Media().ListMediaPaged(r.Context(), limit, offset, orderFactor)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &mediaListResponse{Media: media, TotalCount: total})
}
