// Package modal provides a declarative dialog builder whose output is
// mounted into the dialog stack.
//
// A Modal is a title plus a list of sections. Rendering it into a dialog
// boundary produces host elements: a heading bound to the boundary's
// aria-labelledby, an optional description, then each section in order.
// Keyboard and mouse interaction comes from the host document and the
// overlay painter, so sections only describe content and report actions.
//
// # Quick Start
//
//	m := modal.New("Confirm Delete", modal.WithVariant(modal.VariantDanger)).
//	    AddSection(modal.Text("Are you sure you want to delete this item?")).
//	    AddSection(modal.Spacer()).
//	    AddSection(modal.Buttons(
//	        modal.Btn(" Delete ", "delete", modal.BtnDanger()),
//	        modal.Btn(" Cancel ", "cancel"),
//	    ))
//
//	stack.Open(ctl, m, modal.Props{OnAction: func(action string) {
//	    switch action {
//	    case "delete":
//	        performDelete()
//	    }
//	    ctl.Close("")
//	}})
//
// Or, to wait for the choice:
//
//	pending := modal.Await(adapter, m)
//	res, _ := pending.Wait(ctx) // res.Data is the action, nil on cancel
//
// # Built-in Sections
//
//   - Text(s string) - static text, wrapped to the dialog width
//   - Spacer() - blank line
//   - Markdown(md string) - markdown rendered with glamour
//   - Buttons(btns ...ButtonDef) - button row
//   - Checkbox(id, label string, checked *bool) - toggleable checkbox
//   - List(id string, items []ListItem, selectedIdx *int, opts...) - scrollable list
//   - When(condition func() bool, section) - conditional rendering
//
// # Options
//
//   - WithWidth(w int) - set dialog width (default: 50)
//   - WithVariant(v Variant) - set accent color (Default, Danger, Warning, Info)
//   - WithDescription(s string) - description bound to aria-describedby
//   - WithPrimaryAction(actionID string) - action for Enter on the title
package modal
