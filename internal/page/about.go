package page

import "github.com/marcus/modals/pkg/modal"

// featureList doubles as the page's checklist and the about dialog's list.
var featureList = []modal.ListItem{
	{ID: "escape", Label: "Escape and backdrop clicks close the top dialog"},
	{ID: "focus-return", Label: "Focus moves to the title, then back to the trigger"},
	{ID: "tab", Label: "Tab and Shift+Tab navigation"},
	{ID: "trap", Label: "Focus stays inside the open dialog"},
	{ID: "email", Label: "Email field validation"},
	{ID: "alerts", Label: "Errors announced to assistive technology"},
	{ID: "scroll", Label: "Background scrolling is frozen"},
	{ID: "aria", Label: "aria-modal, aria-labelledby and aria-describedby"},
	{ID: "motion", Label: "Reduced motion support"},
	{ID: "await", Label: "Dialogs opened as awaitable results"},
}

const aboutMarkdown = `Dialogs stack: each one opens **above** the last, and only the
top one takes input. Press _Escape_ to close one layer at a time.`

// aboutModal builds the about dialog. Build it when opening, not at init,
// so list state starts fresh.
func aboutModal() *modal.Modal {
	md := modal.New("About this demo",
		modal.WithWidth(64),
		modal.WithVariant(modal.VariantInfo),
		modal.WithDescription("What the dialog stack handles."))

	md.AddSection(modal.Markdown(aboutMarkdown))
	md.AddSection(modal.Spacer())
	md.AddSection(modal.List("features", featureList, nil,
		modal.WithMaxVisible(4),
		modal.WithFilter()))
	md.AddSection(modal.Spacer())
	md.AddSection(modal.Buttons(
		modal.Btn(" Contact ", "contact"),
		modal.Btn(" Close ", "close"),
	))
	return md
}
