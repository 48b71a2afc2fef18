package main

import (
	"flag"
	"fmt"
	"os"
)

func completionCmd() {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: msghist completion <bash|zsh|fish>\n\n")
		fmt.Fprintf(os.Stderr, "Generate shell completion scripts.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  msghist completion bash > /usr/local/etc/bash_completion.d/msghist\n")
		fmt.Fprintf(os.Stderr, "  msghist completion zsh > \"${fpath[1]}/_msghist\"\n")
		fmt.Fprintf(os.Stderr, "  msghist completion fish > ~/.config/fish/completions/msghist.fish\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: shell name is required (bash, zsh, or fish)\n\n")
		fs.Usage()
		os.Exit(1)
	}

	script, err := completionScript(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(script)
}

func completionScript(shell string) (string, error) {
	switch shell {
	case "bash":
		return generateBashCompletion(), nil
	case "zsh":
		return generateZshCompletion(), nil
	case "fish":
		return generateFishCompletion(), nil
	default:
		return "", fmt.Errorf("unsupported shell %q (use bash, zsh, or fish)", shell)
	}
}

func generateBashCompletion() string {
	return `# bash completion for msghist                            -*- shell-script -*-

_msghist() {
    local cur prev words cword
    _init_completion || return

    local commands="list mock completion version help"
    local tui_flags="--base-url --theme --config --version"
    local list_flags="--page --size --sender --content --status --start --end --sort --output --detail --base-url --locale --timeout --config --curl"
    local mock_flags="--db --seed --port --latency --error-rate --cors-origin --log-level"

    if [[ ${cword} -eq 1 ]]; then
        if [[ "${cur}" == -* ]]; then
            COMPREPLY=($(compgen -W "${tui_flags}" -- "${cur}"))
        else
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
        fi
        return
    fi

    local command="${words[1]}"

    case "${prev}" in
        --output)
            COMPREPLY=($(compgen -W "text json" -- "${cur}"))
            return
            ;;
        --status)
            COMPREPLY=($(compgen -W "true false true,false" -- "${cur}"))
            return
            ;;
        --sort)
            COMPREPLY=($(compgen -W "+id -id +created_at -created_at +received_at -received_at" -- "${cur}"))
            return
            ;;
        --locale)
            COMPREPLY=($(compgen -W "zh en" -- "${cur}"))
            return
            ;;
        --log-level)
            COMPREPLY=($(compgen -W "debug info warn error" -- "${cur}"))
            return
            ;;
        --config|--db)
            _filedir
            return
            ;;
        --page|--size|--sender|--content|--start|--end|--base-url|--timeout|--seed|--port|--latency|--error-rate|--cors-origin|--theme)
            return
            ;;
    esac

    case "${command}" in
        list)
            COMPREPLY=($(compgen -W "${list_flags}" -- "${cur}"))
            ;;
        mock)
            COMPREPLY=($(compgen -W "${mock_flags}" -- "${cur}"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            ;;
    esac
}

complete -F _msghist msghist
`
}

func generateZshCompletion() string {
	return `#compdef msghist

# zsh completion for msghist

_msghist() {
    local -a commands
    commands=(
        'list:Print one page of history records'
        'mock:Start a mock history server backed by SQLite'
        'completion:Generate shell completion scripts'
        'version:Print version information'
        'help:Show help message'
    )

    _arguments -C \
        '--base-url[History API base URL]:url:' \
        '--theme[Color theme]:theme:' \
        '--config[Config file]:file:_files' \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'msghist commands' commands
            ;;
        args)
            case $words[1] in
                list)
                    _arguments \
                        '--page[Page index]:page:' \
                        '--size[Page size]:size:' \
                        '--sender[Filter by sender]:sender:' \
                        '--content[Filter by content]:content:' \
                        '--status[Filter by status]:status:(true false true,false)' \
                        '--start[Range start]:start:' \
                        '--end[Range end]:end:' \
                        '--sort[Sort order]:sort:(+id -id +created_at -created_at +received_at -received_at)' \
                        '--output[Output format]:format:(text json)' \
                        '--detail[Print detail rows]' \
                        '--base-url[History API base URL]:url:' \
                        '--locale[Label locale]:locale:(zh en)' \
                        '--timeout[Request timeout]:timeout:' \
                        '--config[Config file]:file:_files' \
                        '--curl[Print as curl command]'
                    ;;
                mock)
                    _arguments \
                        '--db[SQLite database path]:file:_files' \
                        '--seed[Synthetic records to insert]:count:' \
                        '--port[Port to listen on]:port:' \
                        '--latency[Artificial latency]:latency:' \
                        '--error-rate[Random error rate]:rate:' \
                        '--cors-origin[CORS allowed origin]:origin:' \
                        '--log-level[Log level]:level:(debug info warn error)'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_msghist "$@"
`
}

func generateFishCompletion() string {
	return `# fish completion for msghist

complete -c msghist -f

complete -c msghist -n '__fish_use_subcommand' -a list -d 'Print one page of history records'
complete -c msghist -n '__fish_use_subcommand' -a mock -d 'Start a mock history server backed by SQLite'
complete -c msghist -n '__fish_use_subcommand' -a completion -d 'Generate shell completion scripts'
complete -c msghist -n '__fish_use_subcommand' -a version -d 'Print version information'
complete -c msghist -n '__fish_use_subcommand' -a help -d 'Show help message'
complete -c msghist -n '__fish_use_subcommand' -l base-url -d 'History API base URL' -r
complete -c msghist -n '__fish_use_subcommand' -l theme -d 'Color theme' -r
complete -c msghist -n '__fish_use_subcommand' -l config -d 'Config file' -rF

complete -c msghist -n '__fish_seen_subcommand_from list' -l page -d 'Page index' -r
complete -c msghist -n '__fish_seen_subcommand_from list' -l size -d 'Page size' -r
complete -c msghist -n '__fish_seen_subcommand_from list' -l sender -d 'Filter by sender' -r
complete -c msghist -n '__fish_seen_subcommand_from list' -l content -d 'Filter by content' -r
complete -c msghist -n '__fish_seen_subcommand_from list' -l status -d 'Filter by status' -ra 'true false true,false'
complete -c msghist -n '__fish_seen_subcommand_from list' -l start -d 'Range start' -r
complete -c msghist -n '__fish_seen_subcommand_from list' -l end -d 'Range end' -r
complete -c msghist -n '__fish_seen_subcommand_from list' -l sort -d 'Sort order' -ra '+id -id +created_at -created_at +received_at -received_at'
complete -c msghist -n '__fish_seen_subcommand_from list' -l output -d 'Output format' -ra 'text json'
complete -c msghist -n '__fish_seen_subcommand_from list' -l detail -d 'Print detail rows'
complete -c msghist -n '__fish_seen_subcommand_from list' -l base-url -d 'History API base URL' -r
complete -c msghist -n '__fish_seen_subcommand_from list' -l locale -d 'Label locale' -ra 'zh en'
complete -c msghist -n '__fish_seen_subcommand_from list' -l timeout -d 'Request timeout' -r
complete -c msghist -n '__fish_seen_subcommand_from list' -l config -d 'Config file' -rF
complete -c msghist -n '__fish_seen_subcommand_from list' -l curl -d 'Print as curl command'

complete -c msghist -n '__fish_seen_subcommand_from mock' -l db -d 'SQLite database path' -rF
complete -c msghist -n '__fish_seen_subcommand_from mock' -l seed -d 'Synthetic records to insert' -r
complete -c msghist -n '__fish_seen_subcommand_from mock' -l port -d 'Port to listen on' -r
complete -c msghist -n '__fish_seen_subcommand_from mock' -l latency -d 'Artificial latency' -r
complete -c msghist -n '__fish_seen_subcommand_from mock' -l error-rate -d 'Random error rate' -r
complete -c msghist -n '__fish_seen_subcommand_from mock' -l cors-origin -d 'CORS allowed origin' -r
complete -c msghist -n '__fish_seen_subcommand_from mock' -l log-level -d 'Log level' -ra 'debug info warn error'

complete -c msghist -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish' -d 'Shell type'
`
}
