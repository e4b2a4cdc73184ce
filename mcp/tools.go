package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/lvillar/receiptstudio/editor"
	"github.com/lvillar/receiptstudio/vtree"
)

// RegisterSessionTools adds the receipt editing tools, all operating on the
// given session.
func RegisterSessionTools(s *Server, session *editor.Session) {
	s.AddTool(selectTemplateTool(session))
	s.AddTool(editFieldTool(session))
	s.AddTool(editItemFieldTool(session))
	s.AddTool(addItemTool(session))
	s.AddTool(deleteItemTool(session))
	s.AddTool(setTaxRateTool(session))
	s.AddTool(undoTool(session))
	s.AddTool(redoTool(session))
	s.AddTool(newDocumentTool(session))
	s.AddTool(resetCompanyTool(session))
	s.AddTool(exportPDFTool(session))
}

func textResult(format string, args ...interface{}) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf(format, args...)}}}
}

func argString(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok {
		return "", fmt.Errorf("missing or invalid %q argument", key)
	}
	return v, nil
}

func argInt(args map[string]interface{}, key string) (int, error) {
	// JSON numbers arrive as float64.
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("missing or invalid %q argument", key)
	}
	return int(v), nil
}

func selectTemplateTool(session *editor.Session) Tool {
	return Tool{
		Name:        "select_template",
		Description: "Switch the receipt to one of the built-in layouts: modern, classic, or minimal.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"template": map[string]interface{}{
					"type":        "string",
					"description": "Template identifier: modern, classic, or minimal",
				},
			},
			"required": []string{"template"},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			id, err := argString(args, "template")
			if err != nil {
				return ToolResult{}, err
			}
			if err := session.SelectTemplate(id); err != nil {
				return ToolResult{}, err
			}
			return textResult("Template switched to %s", id), nil
		},
	}
}

func editFieldTool(session *editor.Session) Tool {
	return Tool{
		Name:        "edit_field",
		Description: "Set the text of a document field by role, e.g. company-name, customer-address, receipt-number. Input is sanitized and length-capped.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"role": map[string]interface{}{
					"type":        "string",
					"description": "Field role, e.g. company-name, customer-name, receipt-date",
				},
				"text": map[string]interface{}{
					"type":        "string",
					"description": "New field content",
				},
			},
			"required": []string{"role", "text"},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			role, err := argString(args, "role")
			if err != nil {
				return ToolResult{}, err
			}
			text, err := argString(args, "text")
			if err != nil {
				return ToolResult{}, err
			}
			if err := session.EditField(vtree.Role(role), text); err != nil {
				return ToolResult{}, err
			}
			return textResult("Field %s updated", role), nil
		},
	}
}

func editItemFieldTool(session *editor.Session) Tool {
	return Tool{
		Name:        "edit_item_field",
		Description: "Set a line-item cell: item-description, item-quantity, or item-price at a row index. Quantity and price edits recompute the totals.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"role": map[string]interface{}{
					"type":        "string",
					"description": "item-description, item-quantity, or item-price",
				},
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Zero-based line item row",
				},
				"text": map[string]interface{}{
					"type":        "string",
					"description": "New cell content",
				},
			},
			"required": []string{"role", "index", "text"},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			role, err := argString(args, "role")
			if err != nil {
				return ToolResult{}, err
			}
			index, err := argInt(args, "index")
			if err != nil {
				return ToolResult{}, err
			}
			text, err := argString(args, "text")
			if err != nil {
				return ToolResult{}, err
			}
			if err := session.EditItemField(vtree.Role(role), index, text); err != nil {
				return ToolResult{}, err
			}
			return textResult("Item %d %s updated", index, role), nil
		},
	}
}

func addItemTool(session *editor.Session) Tool {
	return Tool{
		Name:        "add_item",
		Description: "Append a new line item with default values.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			if err := session.AddItem(); err != nil {
				return ToolResult{}, err
			}
			return textResult("Item added (%d items total)", len(session.Document().Items)), nil
		},
	}
}

func deleteItemTool(session *editor.Session) Tool {
	return Tool{
		Name:        "delete_item",
		Description: "Delete the line item at a row index. The last remaining item cannot be deleted.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Zero-based line item row",
				},
			},
			"required": []string{"index"},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			index, err := argInt(args, "index")
			if err != nil {
				return ToolResult{}, err
			}
			if err := session.DeleteItem(index); err != nil {
				return ToolResult{}, err
			}
			return textResult("Item %d deleted (%d items remain)", index, len(session.Document().Items)), nil
		},
	}
}

func setTaxRateTool(session *editor.Session) Tool {
	return Tool{
		Name:        "set_tax_rate",
		Description: "Set the tax rate in percent and recompute the totals. Negative rates are clamped to zero.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"percent": map[string]interface{}{
					"type":        "number",
					"description": "Tax rate in percent, e.g. 7",
				},
			},
			"required": []string{"percent"},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			percent, ok := args["percent"].(float64)
			if !ok {
				return ToolResult{}, fmt.Errorf("missing or invalid %q argument", "percent")
			}
			if err := session.SetTaxRate(decimal.NewFromFloat(percent)); err != nil {
				return ToolResult{}, err
			}
			doc := session.Document()
			return textResult("Tax rate set to %s%% (total %s)", session.TaxRate(), doc.Totals.Total), nil
		},
	}
}

func undoTool(session *editor.Session) Tool {
	return Tool{
		Name:        "undo",
		Description: "Restore the previous snapshot of the receipt.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			if !session.Undo() {
				return textResult("Nothing to undo"), nil
			}
			return textResult("Undone"), nil
		},
	}
}

func redoTool(session *editor.Session) Tool {
	return Tool{
		Name:        "redo",
		Description: "Restore the next snapshot of the receipt.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			if !session.Redo() {
				return textResult("Nothing to redo"), nil
			}
			return textResult("Redone"), nil
		},
	}
}

func newDocumentTool(session *editor.Session) Tool {
	return Tool{
		Name:        "new_document",
		Description: "Start a fresh receipt, keeping the current company details. The undo history restarts.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			if err := session.NewDocument(); err != nil {
				return ToolResult{}, err
			}
			return textResult("New document created"), nil
		},
	}
}

func resetCompanyTool(session *editor.Session) Tool {
	return Tool{
		Name:        "reset_company",
		Description: "Reset the company details to the built-in defaults.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			if err := session.ResetCompany(); err != nil {
				return ToolResult{}, err
			}
			return textResult("Company details reset"), nil
		},
	}
}

func exportPDFTool(session *editor.Session) Tool {
	return Tool{
		Name:        "export_pdf",
		Description: "Export the receipt as a paginated A4 PDF. Returns the PDF as base64 unless an output path is given.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"outputPath": map[string]interface{}{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			var buf bytes.Buffer
			result, err := session.Export(context.Background(), &buf)
			if err != nil {
				return ToolResult{}, err
			}

			if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
				if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
					return ToolResult{}, fmt.Errorf("writing file: %w", err)
				}
				return textResult("PDF exported: %s (%d pages, %d bytes)", outputPath, result.Pages, buf.Len()), nil
			}

			return ToolResult{Content: []ContentBlock{
				{Type: "text", Text: fmt.Sprintf("PDF exported: %s (%d pages)", result.Filename, result.Pages)},
				{Type: "resource", MIMEType: "application/pdf", Data: base64.StdEncoding.EncodeToString(buf.Bytes())},
			}}, nil
		},
	}
}
