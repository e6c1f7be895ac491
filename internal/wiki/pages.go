package wiki

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
)

const listPagesQuery = `
query {
  pages {
    list(orderBy: TITLE) {
      id
      path
    }
  }
}
`

const createPageMutation = `
mutation CreatePage($content: String!, $description: String!, $editor: String!, $isPublished: Boolean!, $isPrivate: Boolean!, $locale: String!, $path: String!, $tags: [String]!, $title: String!) {
  pages {
    create(
      content: $content,
      description: $description,
      editor: $editor,
      isPublished: $isPublished,
      isPrivate: $isPrivate,
      locale: $locale,
      path: $path,
      tags: $tags,
      title: $title
    ) {
      responseResult {
        succeeded
        message
      }
      page {
        id
      }
    }
  }
}
`

const updatePageMutation = `
mutation UpdatePage($id: Int!, $title: String!, $content: String!, $editor: String!, $description: String!, $locale: String!, $path: String!, $tags: [String!]) {
  pages {
    update(id: $id, title: $title, content: $content, editor: $editor, description: $description, locale: $locale, path: $path, tags: $tags) {
      responseResult {
        succeeded
        message
      }
    }
  }
}
`

type responseResult struct {
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message"`
}

// ListPages fetches the full remote path -> id index in one request.
// This is the run's single consistent read of remote state.
func (c *Client) ListPages(ctx context.Context) (map[string]int, error) {
	c.log.Info("fetching existing Wiki.js pages")

	data, err := c.do(ctx, listPagesQuery, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Pages struct {
			List []struct {
				ID   int    `json:"id"`
				Path string `json:"path"`
			} `json:"list"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(errors.EWikiRequest, "failed to decode page list", err)
	}

	index := make(map[string]int, len(payload.Pages.List))
	for _, p := range payload.Pages.List {
		index[p.Path] = p.ID
	}

	c.log.Info("found existing pages", "count", len(index))
	return index, nil
}

// CreatePage creates a new published, public page.
func (c *Client) CreatePage(ctx context.Context, title, content, path, locale string) error {
	c.log.Info("creating new page", "title", title, "path", path)

	variables := map[string]any{
		"content":     content,
		"description": fmt.Sprintf("Automatically generated from Saved Search: %s", title),
		"editor":      "markdown",
		"isPublished": true,
		"isPrivate":   false,
		"locale":      locale,
		"path":        path,
		"tags":        []string{},
		"title":       title,
	}

	data, err := c.do(ctx, createPageMutation, variables)
	if err != nil {
		return err
	}

	var payload struct {
		Pages struct {
			Create struct {
				ResponseResult responseResult `json:"responseResult"`
			} `json:"create"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return errors.Wrap(errors.EWikiRequest, "failed to decode create response", err)
	}
	if !payload.Pages.Create.ResponseResult.Succeeded {
		return errors.NewWithDetails(
			errors.EWikiRejected,
			fmt.Sprintf("error creating page %q: %s", title, payload.Pages.Create.ResponseResult.Message),
			map[string]string{"path": path},
		)
	}
	return nil
}

// UpdatePage updates an existing page by id.
func (c *Client) UpdatePage(ctx context.Context, id int, title, content, path, locale string) error {
	c.log.Info("updating existing page", "title", title, "page_id", id)

	variables := map[string]any{
		"id":          id,
		"title":       title,
		"content":     content,
		"editor":      "markdown",
		"description": fmt.Sprintf("Automatically updated from Saved Search: %s", title),
		"locale":      locale,
		"path":        path,
		"tags":        []string{},
	}

	data, err := c.do(ctx, updatePageMutation, variables)
	if err != nil {
		return err
	}

	var payload struct {
		Pages struct {
			Update struct {
				ResponseResult responseResult `json:"responseResult"`
			} `json:"update"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return errors.Wrap(errors.EWikiRequest, "failed to decode update response", err)
	}
	if !payload.Pages.Update.ResponseResult.Succeeded {
		return errors.NewWithDetails(
			errors.EWikiRejected,
			fmt.Sprintf("error updating page %q: %s", title, payload.Pages.Update.ResponseResult.Message),
			map[string]string{"path": path, "page_id": fmt.Sprintf("%d", id)},
		)
	}
	return nil
}
