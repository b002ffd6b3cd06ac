package clickup

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// FindWorkspace returns the workspace whose name equals the configured
// workspace name exactly.
func (s *Service) FindWorkspace(ctx context.Context) (*Workspace, error) {
	var resp teamsResponse
	if err := s.client.Get(ctx, "/team", &resp); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	for _, team := range resp.Teams {
		if team.Name == s.conv.WorkspaceName {
			ws := team
			return &ws, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrWorkspaceNotFound, s.conv.WorkspaceName)
}

// ListSpaces returns the non-archived spaces of a workspace.
func (s *Service) ListSpaces(ctx context.Context, workspaceID string) ([]Space, error) {
	var resp spacesResponse
	path := fmt.Sprintf("/team/%s/space?archived=false", url.PathEscape(workspaceID))
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	return orEmpty(resp.Spaces), nil
}

// ListSprints returns the lists of the first sprint folder in the sprint
// space. A missing space or folder, and any failure, yield an empty slice.
func (s *Service) ListSprints(ctx context.Context, workspaceID string) []Sprint {
	sprints := []Sprint{}

	spaces, err := s.ListSpaces(ctx, workspaceID)
	if err != nil {
		s.log.Warn("sprints: could not list spaces", "workspace_id", workspaceID, "error", err)
		return sprints
	}

	var sprintSpace *Space
	for i := range spaces {
		if strings.EqualFold(spaces[i].Name, s.conv.SprintSpace) {
			sprintSpace = &spaces[i]
			break
		}
	}
	if sprintSpace == nil {
		s.log.Debug("sprints: no sprint space", "space_name", s.conv.SprintSpace)
		return sprints
	}

	folders, err := s.folders(ctx, sprintSpace.ID)
	if err != nil {
		s.log.Warn("sprints: could not list folders", "space_id", sprintSpace.ID, "error", err)
		return sprints
	}

	keyword := strings.ToLower(s.conv.SprintFolderKeyword)
	var sprintFolder *Folder
	for i := range folders {
		if strings.Contains(strings.ToLower(folders[i].Name), keyword) {
			sprintFolder = &folders[i]
			break
		}
	}
	if sprintFolder == nil {
		s.log.Debug("sprints: no sprint folder", "space_id", sprintSpace.ID, "keyword", keyword)
		return sprints
	}

	lists, err := s.folderLists(ctx, sprintFolder.ID)
	if err != nil {
		s.log.Warn("sprints: could not list sprint lists", "folder_id", sprintFolder.ID, "error", err)
		return sprints
	}
	for _, l := range lists {
		sprints = append(sprints, Sprint{ID: l.ID, Name: l.Name})
	}
	return sprints
}

// ListMembers returns the members of a workspace, or an empty slice on failure.
func (s *Service) ListMembers(ctx context.Context, workspaceID string) []Member {
	var resp teamResponse
	if err := s.client.Get(ctx, "/team/"+url.PathEscape(workspaceID), &resp); err != nil {
		s.log.Warn("members: could not load workspace", "workspace_id", workspaceID, "error", err)
		return []Member{}
	}
	members := make([]Member, 0, len(resp.Team.Members))
	for _, m := range resp.Team.Members {
		members = append(members, m.User)
	}
	return members
}

// ListEpics returns every list of the space: the lists of each folder in
// folder order, then the lists directly in the space. Both branches run
// concurrently and a failing branch (or folder) only loses its own lists.
func (s *Service) ListEpics(ctx context.Context, spaceID string) []Epic {
	var (
		wg          sync.WaitGroup
		folderLists []List
		directLists []List
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		folderLists = s.allFolderLists(ctx, spaceID)
	}()
	go func() {
		defer wg.Done()
		lists, err := s.spaceLists(ctx, spaceID)
		if err != nil {
			s.log.Warn("epics: could not list direct lists", "space_id", spaceID, "error", err)
			return
		}
		directLists = lists
	}()
	wg.Wait()

	epics := make([]Epic, 0, len(folderLists)+len(directLists))
	for _, l := range folderLists {
		epics = append(epics, Epic(l))
	}
	for _, l := range directLists {
		epics = append(epics, Epic(l))
	}
	s.log.Debug("epics resolved", "space_id", spaceID, "folder_lists", len(folderLists), "direct_lists", len(directLists))
	return epics
}

// allFolderLists concatenates the lists of every folder. Failures are
// logged and skipped per folder.
func (s *Service) allFolderLists(ctx context.Context, spaceID string) []List {
	folders, err := s.folders(ctx, spaceID)
	if err != nil {
		s.log.Warn("epics: could not list folders", "space_id", spaceID, "error", err)
		return nil
	}

	var out []List
	for _, f := range folders {
		lists, err := s.folderLists(ctx, f.ID)
		if err != nil {
			s.log.Warn("epics: could not list folder lists", "folder_id", f.ID, "folder", f.Name, "error", err)
			continue
		}
		out = append(out, lists...)
	}
	return out
}

// ListStatuses returns the statuses of the first list of the space: the
// first list of the first folder, else the first direct list. Any failure,
// or a space without lists, yields an empty slice.
func (s *Service) ListStatuses(ctx context.Context, spaceID string) []Status {
	statuses := []Status{}

	listID := ""
	folders, err := s.folders(ctx, spaceID)
	if err != nil {
		s.log.Warn("statuses: could not list folders", "space_id", spaceID, "error", err)
	} else if len(folders) > 0 {
		lists, err := s.folderLists(ctx, folders[0].ID)
		if err != nil {
			s.log.Warn("statuses: could not list folder lists", "folder_id", folders[0].ID, "error", err)
		} else if len(lists) > 0 {
			listID = lists[0].ID
		}
	}

	if listID == "" {
		lists, err := s.spaceLists(ctx, spaceID)
		if err != nil {
			s.log.Warn("statuses: could not list direct lists", "space_id", spaceID, "error", err)
			return statuses
		}
		if len(lists) == 0 {
			s.log.Info("statuses: space has no lists", "space_id", spaceID)
			return statuses
		}
		listID = lists[0].ID
	}

	var detail listDetailResponse
	if err := s.client.Get(ctx, "/list/"+url.PathEscape(listID), &detail); err != nil {
		s.log.Warn("statuses: could not load list", "list_id", listID, "error", err)
		return statuses
	}
	for _, st := range detail.Statuses {
		if st.ID == "" {
			st.ID = st.Status
		}
		statuses = append(statuses, st)
	}
	return statuses
}

func (s *Service) folders(ctx context.Context, spaceID string) ([]Folder, error) {
	var resp foldersResponse
	path := fmt.Sprintf("/space/%s/folder?archived=false", url.PathEscape(spaceID))
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return resp.Folders, nil
}

func (s *Service) folderLists(ctx context.Context, folderID string) ([]List, error) {
	var resp listsResponse
	path := fmt.Sprintf("/folder/%s/list?archived=false", url.PathEscape(folderID))
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list folder lists: %w", err)
	}
	return resp.Lists, nil
}

func (s *Service) spaceLists(ctx context.Context, spaceID string) ([]List, error) {
	var resp listsResponse
	path := fmt.Sprintf("/space/%s/list?archived=false", url.PathEscape(spaceID))
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list space lists: %w", err)
	}
	return resp.Lists, nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
