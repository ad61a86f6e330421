// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	VagrantNotFoundId Id = iota + 1
	VagrantfileNotFoundId
	CommandFailedId
	SSHConfigFailedId
	ConfigLoadFailedId
	MachineNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // upstream documentation for this failure mode
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	vagrantNotFoundIssue = &Issue{
		id: VagrantNotFoundId,
		mdMsg: `
# Vagrant binary not found!

We could not find a vagrant executable on your PATH.

## Things you can try:
- Install Vagrant:
  - Linux: ` + "`sudo apt install vagrant`" + ` or ` + "`sudo dnf install vagrant`" + `
  - macOS: ` + "`brew install --cask vagrant`" + `
  - Windows: Download from https://developer.hashicorp.com/vagrant/downloads

- Or point vagabond at an existing binary:
~~~
$ vagabond config set command /opt/vagrant/bin/vagrant
~~~`,
		docLinks: []HttpLink{"https://developer.hashicorp.com/vagrant/docs/installation"},
	}

	vagrantfileNotFoundIssue = &Issue{
		id: VagrantfileNotFoundId,
		mdMsg: `
# No Vagrant environment here!

Vagrant reported that no Vagrantfile exists in the working directory.

## Things you can try:
- Change to the directory containing your Vagrantfile:
~~~
$ cd /path/to/your/project
$ vagabond status
~~~

- Or pass the directory explicitly:
~~~
$ vagabond --dir /path/to/your/project status
~~~

- Or create a new environment:
~~~
$ vagrant init ubuntu/jammy64
~~~`,
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# Vagrant command failed!

The vagrant process exited with a non-zero status.

## Common causes:
- The provider (VirtualBox, libvirt, ...) is not installed or not running
- A machine is in a broken state
- The Vagrantfile has a syntax error

## Things you can try:
- Run with verbose mode for the full vagrant output:
~~~
$ vagabond --verbose status
~~~

- Run the vagrant command directly to see the provider error
- Validate the Vagrantfile:
~~~
$ vagrant validate
~~~`,
	}

	sshConfigFailedIssue = &Issue{
		id: SSHConfigFailedId,
		mdMsg: `
# Could not fetch ssh-config!

Vagrant only emits ssh-config for machines that are running.

## Things you can try:
- Check machine states first:
~~~
$ vagabond status
~~~

- Bring the machines up:
~~~
$ vagrant up
~~~

- Request the config for a single running machine:
~~~
$ vagabond ssh-config web
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the vagabond configuration file.

## Configuration file locations:
- Linux: ~/.config/vagabond/config.toml
- macOS: ~/Library/Application Support/vagabond/config.toml
- Windows: %APPDATA%\vagabond\config.toml

## Things you can try:
- Create a default configuration:
~~~
$ vagabond config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~toml
command = "vagrant"
working_dir = "/home/joe/vms"
timeout = "60s"

[ui]
color_scheme = "auto"
verbose = false
~~~`,
	}

	machineNotFoundIssue = &Issue{
		id: MachineNotFoundId,
		mdMsg: `
# Machine not found!

The machine name you specified is not defined in this Vagrant environment.

## Things you can try:
- List the machines vagrant knows about:
~~~
$ vagabond status
~~~

- Check for typos in the machine name
- Verify you are in the right working directory`,
	}

	issues = map[Id]*Issue{
		vagrantNotFoundIssue.Id():     vagrantNotFoundIssue,
		vagrantfileNotFoundIssue.Id(): vagrantfileNotFoundIssue,
		commandFailedIssue.Id():       commandFailedIssue,
		sshConfigFailedIssue.Id():     sshConfigFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		machineNotFoundIssue.Id():     machineNotFoundIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
