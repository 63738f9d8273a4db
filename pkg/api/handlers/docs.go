package handlers

import (
	"fmt"
	"net/http"

	"github.com/Clay-Ferguson/quanta-docs/internal/logger"
	"github.com/Clay-Ferguson/quanta-docs/pkg/api/middleware"
	"github.com/Clay-Ferguson/quanta-docs/pkg/config"
	"github.com/Clay-Ferguson/quanta-docs/pkg/docs"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
)

// DocsHandler exposes the document service over HTTP. Every endpoint takes a
// JSON body, resolves the acting principal from the request context, and maps
// service errors through WriteError.
type DocsHandler struct {
	svc      *docs.Service
	docRoots []config.DocRootConfig
}

// NewDocsHandler creates a new DocsHandler.
func NewDocsHandler(svc *docs.Service, docRoots []config.DocRootConfig) *DocsHandler {
	return &DocsHandler{
		svc:      svc,
		docRoots: docRoots,
	}
}

// caller resolves the acting principal. The auth middleware always runs
// before these handlers, so a missing principal is a wiring bug.
func (h *DocsHandler) caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.CallerID(r.Context())
	if !ok {
		Unauthorized(w, "authentication required")
		return 0, false
	}
	return id, true
}

// resolveRoot validates a docRootKey against the configured roots. An empty
// key selects the first configured root.
func (h *DocsHandler) resolveRoot(w http.ResponseWriter, key string) (string, bool) {
	if key == "" {
		if len(h.docRoots) == 0 {
			InternalServerError(w, "no document roots configured")
			return "", false
		}
		return h.docRoots[0].Key, true
	}
	for _, root := range h.docRoots {
		if root.Key == key {
			return key, true
		}
	}
	BadRequest(w, "unknown document root: "+key)
	return "", false
}

// CreateFolderRequest is the request body for POST /createFolder.
type CreateFolderRequest struct {
	FolderName      string `json:"folderName"`
	TreeFolder      string `json:"treeFolder"`
	InsertAfterNode string `json:"insertAfterNode"`
	DocRootKey      string `json:"docRootKey"`
}

// CreateFolderResponse is the response body for POST /createFolder.
type CreateFolderResponse struct {
	Message    string `json:"message"`
	FolderName string `json:"folderName"`
	Ordinal    int32  `json:"ordinal"`
}

// CreateFolder handles POST /createFolder.
func (h *DocsHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req CreateFolderRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.FolderName == "" {
		BadRequest(w, "folderName is required")
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	ordinal, err := h.svc.CreateFolder(r.Context(), caller, vfs.NormalizePath(req.TreeFolder), req.FolderName, req.InsertAfterNode, root)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSONOK(w, CreateFolderResponse{
		Message:    "Folder created successfully",
		FolderName: req.FolderName,
		Ordinal:    ordinal,
	})
}

// CreateFileRequest is the request body for POST /createFile.
type CreateFileRequest struct {
	FileName        string `json:"fileName"`
	TreeFolder      string `json:"treeFolder"`
	InsertAfterNode string `json:"insertAfterNode"`
	DocRootKey      string `json:"docRootKey"`
}

// CreateFileResponse is the response body for POST /createFile.
type CreateFileResponse struct {
	Message  string `json:"message"`
	FileName string `json:"fileName"`
	Ordinal  int32  `json:"ordinal"`
}

// CreateFile handles POST /createFile.
func (h *DocsHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req CreateFileRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.FileName == "" {
		BadRequest(w, "fileName is required")
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	ordinal, err := h.svc.CreateFile(r.Context(), caller, vfs.NormalizePath(req.TreeFolder), req.FileName, req.InsertAfterNode, root)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSONOK(w, CreateFileResponse{
		Message:  "File created successfully",
		FileName: req.FileName,
		Ordinal:  ordinal,
	})
}

// SaveFileRequest is the request body for POST /saveFile.
type SaveFileRequest struct {
	Filename   string `json:"filename"`
	Content    string `json:"content"`
	TreeFolder string `json:"treeFolder"`
	DocRootKey string `json:"docRootKey"`
}

// SaveFile handles POST /saveFile.
func (h *DocsHandler) SaveFile(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SaveFileRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Filename == "" {
		BadRequest(w, "filename is required")
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	if err := h.svc.SaveFile(r.Context(), caller, vfs.NormalizePath(req.TreeFolder), req.Filename, root, []byte(req.Content)); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSONOK(w, map[string]string{"message": "File saved successfully"})
}

// PasteItemsRequest is the request body for POST /pasteItems.
type PasteItemsRequest struct {
	DestFolder string   `json:"destFolder"`
	AnchorUUID string   `json:"anchorUuid"`
	ItemUUIDs  []string `json:"itemUuids"`
	Mode       string   `json:"mode"`
	DocRootKey string   `json:"docRootKey"`
}

// PasteItems handles POST /pasteItems.
func (h *DocsHandler) PasteItems(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req PasteItemsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	count, err := h.svc.PasteItems(r.Context(), caller, req.DestFolder, req.AnchorUUID, req.ItemUUIDs, req.Mode, root)
	if err != nil {
		WriteError(w, err)
		return
	}
	resp := map[string]any{"message": "Items pasted successfully"}
	if req.Mode == docs.PasteModeCopy {
		resp["copied"] = count
	} else {
		resp["moved"] = count
	}
	WriteJSONOK(w, resp)
}

// MoveUpOrDownRequest is the request body for POST /moveUpOrDown.
type MoveUpOrDownRequest struct {
	Filename   string `json:"filename"`
	TreeFolder string `json:"treeFolder"`
	Direction  string `json:"direction"`
	DocRootKey string `json:"docRootKey"`
}

// MoveUpOrDown handles POST /moveUpOrDown.
func (h *DocsHandler) MoveUpOrDown(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req MoveUpOrDownRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Filename == "" {
		BadRequest(w, "filename is required")
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	if err := h.svc.MoveUpOrDown(r.Context(), caller, vfs.NormalizePath(req.TreeFolder), req.Filename, req.Direction, root); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSONOK(w, map[string]string{"message": "Files moved successfully"})
}

// DeleteItemsRequest is the request body for POST /deleteItems.
type DeleteItemsRequest struct {
	Paths      []string `json:"paths"`
	DocRootKey string   `json:"docRootKey"`
}

// DeleteItems handles POST /deleteItems.
func (h *DocsHandler) DeleteItems(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req DeleteItemsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if len(req.Paths) == 0 {
		BadRequest(w, "paths is required")
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	deleted, err := h.svc.DeleteItems(r.Context(), caller, req.Paths, root)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSONOK(w, map[string]any{
		"message": fmt.Sprintf("%d item(s) deleted", deleted),
		"deleted": deleted,
	})
}

// RenameRequest is the request body for POST /rename.
type RenameRequest struct {
	OldPath    string `json:"oldPath"`
	NewPath    string `json:"newPath"`
	DocRootKey string `json:"docRootKey"`
}

// StatusResponse is the {success, diagnostic} wire shape.
type StatusResponse struct {
	Success    bool   `json:"success"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Rename handles POST /rename.
func (h *DocsHandler) Rename(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req RenameRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.OldPath == "" || req.NewPath == "" {
		BadRequest(w, "oldPath and newPath are required")
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	if err := h.svc.RenameItem(r.Context(), caller, req.OldPath, req.NewPath, root); err != nil {
		WriteError(w, err)
		return
	}
	logger.InfoCtx(r.Context(), "item renamed",
		logger.KeyOldPath, req.OldPath,
		logger.KeyNewPath, req.NewPath,
		logger.KeyDocRoot, root,
	)
	WriteJSONOK(w, StatusResponse{Success: true, Diagnostic: "renamed"})
}

// SetPublicRequest is the request body for POST /setPublic.
type SetPublicRequest struct {
	Path       string `json:"path"`
	IsPublic   bool   `json:"isPublic"`
	Recursive  bool   `json:"recursive"`
	DocRootKey string `json:"docRootKey"`
}

// SetPublic handles POST /setPublic.
func (h *DocsHandler) SetPublic(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SetPublicRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		BadRequest(w, "path is required")
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	updated, err := h.svc.SetPublic(r.Context(), caller, req.Path, root, req.IsPublic, req.Recursive)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSONOK(w, StatusResponse{
		Success:    true,
		Diagnostic: fmt.Sprintf("%d item(s) updated", updated),
	})
}

// SearchTextRequest is the request body for POST /searchText.
type SearchTextRequest struct {
	Query       string `json:"query"`
	TreeFolder  string `json:"treeFolder"`
	DocRootKey  string `json:"docRootKey"`
	SearchMode  string `json:"searchMode"`
	SearchOrder string `json:"searchOrder"`
}

// SearchTextResponse is the response body for POST /searchText.
type SearchTextResponse struct {
	Query       string             `json:"query"`
	SearchPath  string             `json:"searchPath"`
	SearchMode  string             `json:"searchMode"`
	ResultCount int                `json:"resultCount"`
	Results     []vfs.SearchResult `json:"results"`
}

// SearchText handles POST /searchText.
func (h *DocsHandler) SearchText(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SearchTextRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	scope := vfs.NormalizePath(req.TreeFolder)
	results, err := h.svc.Search(r.Context(), caller, req.Query, scope, root, req.SearchMode, req.SearchOrder)
	if err != nil {
		WriteError(w, err)
		return
	}
	mode := req.SearchMode
	if mode == "" {
		mode = string(vfs.MatchAny)
	}
	if results == nil {
		results = []vfs.SearchResult{}
	}
	WriteJSONOK(w, SearchTextResponse{
		Query:       req.Query,
		SearchPath:  scope,
		SearchMode:  mode,
		ResultCount: len(results),
		Results:     results,
	})
}

// TagsRequest is the request body for the tag endpoints.
type TagsRequest struct {
	DocRootKey string `json:"docRootKey"`
}

// ExtractTagsResponse is the response body for POST /extractTags.
type ExtractTagsResponse struct {
	Success    bool               `json:"success"`
	Tags       []string           `json:"tags"`
	Categories []docs.TagCategory `json:"categories"`
}

// ExtractTags handles POST /extractTags.
func (h *DocsHandler) ExtractTags(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req TagsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	report, err := h.svc.ExtractTags(r.Context(), caller, root)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSONOK(w, ExtractTagsResponse{
		Success:    true,
		Tags:       report.Tags,
		Categories: report.Categories,
	})
}

// ScanAndUpdateTagsResponse is the response body for POST /scanAndUpdateTags.
type ScanAndUpdateTagsResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ExistingTags int    `json:"existingTags"`
	NewTags      int    `json:"newTags"`
	TotalTags    int    `json:"totalTags"`
}

// ScanAndUpdateTags handles POST /scanAndUpdateTags.
func (h *DocsHandler) ScanAndUpdateTags(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req TagsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	root, ok := h.resolveRoot(w, req.DocRootKey)
	if !ok {
		return
	}

	report, err := h.svc.ScanAndUpdateTags(r.Context(), caller, root)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSONOK(w, ScanAndUpdateTagsResponse{
		Success:      true,
		Message:      fmt.Sprintf("Scan complete: %d new tag(s) discovered", report.NewTags),
		ExistingTags: report.ExistingTags,
		NewTags:      report.NewTags,
		TotalTags:    report.TotalTags,
	})
}
