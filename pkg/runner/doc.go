/*
Package runner implements the terminal reading loop of a Tapestry story.

It acts as the bridge between the Navigation Engine and a reader. For every
new screen the runner paces the lines with the reveal plan, notifies the
engine when the screen is fully revealed, shows the controls and reads one
command.

# Key Components

  - Runner: the loop. Time is injected through a Sleeper, so tests never wait.
  - IOHandler: decouples presentation from the loop.
  - TextHandler: interactive terminal output with optional markdown rendering.
  - JSONHandler: one JSON object per screen, for scripted and headless use.

# Commands

An empty line advances when the screen offers a continue control, a number
selects the matching choice, "t" shows or hides the choices and "q" quits.

# Usage

	eng, _ := tapestry.New(ctx, "./story")
	r := runner.NewRunner(eng,
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithTypewriter(true),
	)
	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
