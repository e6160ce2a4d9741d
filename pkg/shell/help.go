package shell

import "context"

const helpText = `
=== Drive CLI - Command Reference ===

NAVIGATION:
  ls                    List files and folders in current directory
  ls tree               Display directory tree structure
  pwd                   Print working directory (current path)
  cd <path>             Change directory
  cd ..                 Move to parent directory
  cd /                  Move to root directory
  find <name>           Find file/folder by exact name

FILE OPERATIONS:
  new <name> <type>     Create item (type: file/dir/docs/sheet/slide/form)
  touch <name>          Create new empty text file
  mkdir <name>          Create new folder
  rn <old> <new>        Rename file or folder
  del <name>            Move file/folder to trash
  rm <name>             Alias for del
  mv <name> <path>      Move file/folder to another folder
  cp <name> <path>      Copy file to another folder
  copy <name>           Copy file to clipboard
  paste                 Paste file from clipboard

METADATA:
  stat <name>           Show detailed statistics
  url <name>            Get URL of file/folder
  open <name>           Open file/folder in new tab
  cat <name>            Print contents of a text file

SHARING:
  share <name> <email> <type>
                        Share with user (type: view/edit/comment)
  share <name> --link [type]
                        Enable link sharing at the given role
  share <name> --list   Show sharing state and grants

TRASH:
  trash                 List trashed items
  trash <name> restore  Restore item from trash

UI CONTROL:
  clear                 Clear terminal screen
  reload                Reload page
  exit                  Close terminal tab
  color <color>         Change text color
                        (white/blue/green/red/yellow/cyan/magenta/black)

OTHER:
  clone <URL>           Not supported (recognized for compatibility)
  help                  Show this help message

Examples:
  > ls
  > cd Documents
  > new report.txt file
  > stat report.txt
  > share report.txt user@example.com view
  > mv report.txt /Archive
  > cd ..
  > pwd

Note: <name> can include spaces
      <path> = directory path (absolute or relative)
`

func (sh *Shell) cmdHelp(_ context.Context, _ string, _ []string) Result {
	return ok(helpText)
}
