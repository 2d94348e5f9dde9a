// Package tui provides the terminal user interface for the butler's chat
// command.
//
// The chat view is a scrolling transcript with an input field at the bottom.
// While a request is in flight the input is locked and a spinner with the
// orchestrator's latest status line is shown in its place.
//
// Usage:
//
//	program, app := tui.NewChatProgram()
//	app.SetSubmitHandler(func(text string) {
//	    go func() {
//	        result, err := orch.Execute(ctx, orchestrator.Request{UserInput: text})
//	        program.Send(tui.ResponseMsg{Result: result, Err: err})
//	    }()
//	})
//	program.Run()
//
// Status updates arrive the same way:
//
//	program.Send(tui.StatusMsg{Text: "Routing to nutrition (step 1/2)..."})
package tui
