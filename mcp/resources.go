package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/lvillar/receiptstudio/editor"
	"github.com/lvillar/receiptstudio/vtree"
)

// RegisterSessionResources adds read-only views of the session state.
func RegisterSessionResources(s *Server, session *editor.Session) {
	s.AddResource(Resource{
		URI:         "receipt://document",
		Name:        "Receipt document",
		Description: "The canonical document: company, customer, header, line items, and totals as JSON",
		MIMEType:    "application/json",
		Handler:     documentResource(session),
	})
	s.AddResource(Resource{
		URI:         "receipt://totals",
		Name:        "Receipt totals",
		Description: "Subtotal, tax, and grand total at the current tax rate",
		MIMEType:    "application/json",
		Handler:     totalsResource(session),
	})
	s.AddResource(Resource{
		URI:         "receipt://templates",
		Name:        "Available templates",
		Description: "The built-in layouts and which one is active",
		MIMEType:    "application/json",
		Handler:     templatesResource(session),
	})
	s.AddResource(Resource{
		URI:         "receipt://tree",
		Name:        "Visual tree",
		Description: "The serialized visual tree of the active layout",
		MIMEType:    "application/json",
		Handler:     treeResource(session),
	})
}

func jsonContent(uri string, v interface{}) ([]ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", uri, err)
	}
	return []ResourceContent{{URI: uri, MIMEType: "application/json", Text: string(data)}}, nil
}

func documentResource(session *editor.Session) ResourceHandler {
	return func(uri string) ([]ResourceContent, error) {
		return jsonContent(uri, session.Document())
	}
}

func totalsResource(session *editor.Session) ResourceHandler {
	return func(uri string) ([]ResourceContent, error) {
		doc := session.Document()
		return jsonContent(uri, map[string]interface{}{
			"subtotal":   doc.Totals.Subtotal,
			"tax":        doc.Totals.Tax,
			"total":      doc.Totals.Total,
			"taxPercent": session.TaxRate(),
		})
	}
}

func templatesResource(session *editor.Session) ResourceHandler {
	return func(uri string) ([]ResourceContent, error) {
		type entry struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Active bool   `json:"active"`
		}
		active := session.Template()
		var list []entry
		for _, t := range session.Templates() {
			list = append(list, entry{ID: t.ID, Name: t.Name, Active: t.ID == active})
		}
		return jsonContent(uri, list)
	}
}

func treeResource(session *editor.Session) ResourceHandler {
	return func(uri string) ([]ResourceContent, error) {
		tree := session.Tree()
		if tree == nil {
			return nil, fmt.Errorf("no template selected")
		}
		data, err := vtree.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("serializing tree: %w", err)
		}
		return []ResourceContent{{URI: uri, MIMEType: "application/json", Text: string(data)}}, nil
	}
}
