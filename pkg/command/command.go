package command

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/teamdex/pkg/session"
)

type (
	Page struct {
		Limit  int
		Offset int
	}

	Command interface {
		ApplicationCommand() *discordgo.ApplicationCommand
		Handle(context.Context, *session.Session, *discordgo.Session, *discordgo.InteractionCreate) error
		Autocomplete(context.Context, *session.Session, *discordgo.Session, *discordgo.InteractionCreate) error
		Button(context.Context, *session.Session, *discordgo.Session, *discordgo.InteractionCreate, io.Reader) error
		Name() string
	}

	action interface {
		Name() byte
	}

	handler[T any] interface {
		Handle(
			context.Context,
			*session.Session,
			*discordgo.Session,
			*discordgo.InteractionCreate,
			*T,
		) (*discordgo.InteractionResponseData, error)
	}

	autocompleter[T any] interface {
		Autocomplete(
			context.Context,
			*session.Session,
			*discordgo.Session,
			*discordgo.InteractionCreate,
			*T,
		) ([]*discordgo.ApplicationCommandOptionChoice, error)
	}

	pager[T any] interface {
		Paginate(
			context.Context,
			*session.Session,
			*discordgo.Session,
			*discordgo.InteractionCreate,
			paginator[T],
		) (*discordgo.InteractionResponseData, error)
		Initial() Page
	}

	followUp[T any] struct {
		Options T
	}
	paginator[T any] struct {
		Options T
		Page    Page
	}

	command[T any] struct {
		handler       handler[T]
		autocompleter autocompleter[T]
		pager         pager[T]
		command       discordgo.ApplicationCommand
	}

	commands map[string]Command
)

func (paginator[T]) Name() byte {
	return 'p'
}

func (followUp[T]) Name() byte {
	return 'f'
}

var ErrNoCommand = errors.New("no command for options")

// optionCommand finds the registered command decoding its options into T.
func optionCommand[T any](cmds commands) (Command, error) {
	for _, cmd := range cmds {
		if _, ok := cmd.(command[T]); ok {
			return cmd, nil
		}
	}

	var zero T
	return nil, fmt.Errorf("options of type %T: %w", zero, ErrNoCommand)
}

func customID(a action, cmdName string) (string, error) {
	cmdData, err := marshal(&cmdName)
	if err != nil {
		return "", fmt.Errorf("failed to marshal follow-up command: %w", err)
	}

	actionData, err := marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to marshal button data: %w", err)
	}

	var uuid [4]byte
	_, err = rand.Read(uuid[:])
	if err != nil {
		return "", fmt.Errorf("failed to generate button nonce: %w", err)
	}

	return cmdData + string(a.Name()) + actionData + string(uuid[:]), nil
}

// ButtonCommand reads the name of the command a button belongs to from the
// front of its custom ID. The rest of reader is the button state.
func ButtonCommand(reader io.Reader) (string, error) {
	name, err := unmarshal[*string](reader)
	if err != nil {
		return "", fmt.Errorf("failed to unmarshal button command: %w", err)
	}
	if *name == nil {
		return "", fmt.Errorf("button without command: %w", ErrDecodeOption)
	}

	return **name, nil
}

func buttonState[T action](reader io.Reader) (*T, error) {
	state, err := unmarshal[T](reader)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal button state: %w", err)
	}

	return state, nil
}

func followUpButton[T any](cmds commands, opt T, button discordgo.Button) (discordgo.Button, error) {
	cmd, err := optionCommand[T](cmds)
	if err != nil {
		return discordgo.Button{}, fmt.Errorf("could not find command in registry: %w", err)
	}

	id, err := customID(followUp[T]{Options: opt}, cmd.Name())
	if err != nil {
		return discordgo.Button{}, fmt.Errorf("failed to create follow-up button: %w", err)
	}
	button.CustomID = id
	if button.Style == 0 {
		button.Style = discordgo.SecondaryButton
	}

	return button, nil
}

func (cmd command[T]) ApplicationCommand() *discordgo.ApplicationCommand {
	return &cmd.command
}

func (cmd command[T]) Name() string {
	return cmd.command.Name
}

var ErrUnrecognizedInteraction = errors.New("could not handle interaction")

func (cmd command[T]) responseBody(
	ctx context.Context,
	user *session.Session,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt T,
) (*discordgo.InteractionResponseData, error) {
	var body *discordgo.InteractionResponseData
	var err error
	if cmd.handler != nil {
		body, err = cmd.handler.Handle(ctx, user, sess, interaction, &opt)
		if err != nil {
			return nil, fmt.Errorf("error while calling handler: %w", err)
		}
	} else if cmd.pager != nil {
		p := paginator[T]{
			Options: opt,
			Page:    cmd.pager.Initial(),
		}
		body, err = cmd.pager.Paginate(ctx, user, sess, interaction, p)
		if err != nil {
			return nil, fmt.Errorf("error while calling handler: %w", err)
		}
	} else {
		return nil, fmt.Errorf("no handler for command: %w", ErrUnrecognizedInteraction)
	}

	return body, nil
}

func (cmd command[T]) Handle(
	ctx context.Context,
	user *session.Session,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	data := interaction.ApplicationCommandData()

	var structure T
	err := decodeOptions(data.Options, &structure)
	if err != nil {
		return fmt.Errorf("error while decoding options for command %q: %w", data.Name, err)
	}

	body, err := cmd.responseBody(ctx, user, sess, interaction, structure)
	if err != nil {
		return fmt.Errorf("could not handle command %q: %w", cmd.Name(), err)
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: body,
	})
	if err != nil {
		return fmt.Errorf("error while responding to command %q: %w", cmd.Name(), err)
	}

	return nil
}

func (cmd command[T]) Button(
	ctx context.Context,
	user *session.Session,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	reader io.Reader,
) error {
	var action [1]byte
	_, err := io.ReadFull(reader, action[:])
	if err != nil {
		return fmt.Errorf("could not read action from button state: %w", err)
	}

	switch action[0] {
	case paginator[T]{}.Name():
		if cmd.pager == nil {
			return fmt.Errorf("command %q cannot paginate: %w", cmd.Name(), ErrUnrecognizedInteraction)
		}

		page, err := buttonState[paginator[T]](reader)
		if err != nil {
			return fmt.Errorf("error while deserializing pagination data: %w", err)
		}

		body, err := cmd.pager.Paginate(ctx, user, sess, interaction, *page)
		if err != nil {
			return fmt.Errorf("error while calling pagination handler: %w", err)
		}

		err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: body,
		})
		if err != nil {
			return fmt.Errorf("failed to complete interaction: %w", err)
		}

	case followUp[T]{}.Name():
		s, err := buttonState[followUp[T]](reader)
		if err != nil {
			return fmt.Errorf("error while deserializing follow-up data: %w", err)
		}

		body, err := cmd.responseBody(ctx, user, sess, interaction, s.Options)
		if err != nil {
			return fmt.Errorf("could not handle command %q: %w", cmd.Name(), err)
		}

		err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: body,
		})
		if err != nil {
			return fmt.Errorf("error while sending follow-up reply: %w", err)
		}

	default:
		return fmt.Errorf("unknown button action %q: %w", action, ErrUnrecognizedInteraction)
	}

	return nil
}

func (cmd command[T]) Autocomplete(
	ctx context.Context,
	user *session.Session,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	if cmd.autocompleter == nil {
		return fmt.Errorf("command %q has no autocompletion: %w", cmd.Name(), ErrUnrecognizedInteraction)
	}

	var structure T
	err := decodeOptions(interaction.ApplicationCommandData().Options, &structure)
	if err != nil {
		return fmt.Errorf("error while decoding options for autocomplete: %w", err)
	}

	choices, err := cmd.autocompleter.Autocomplete(ctx, user, sess, interaction, &structure)
	if err != nil {
		return fmt.Errorf("error while calling autocompletion handler: %w", err)
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		return fmt.Errorf("error while sending autocompletions: %w", err)
	}

	return nil
}

var ErrDecodeOption = errors.New("error while decoding options")

type discordValue interface {
	string | int | bool
}

type discordField[T discordValue] struct {
	Value   T
	Focused bool
}

var fieldTypes = map[reflect.Type]bool{
	reflect.TypeOf(discordField[string]{}): true,
	reflect.TypeOf(discordField[int]{}):    true,
	reflect.TypeOf(discordField[bool]{}):   true,
}

func decodeOptions(options []*discordgo.ApplicationCommandInteractionDataOption, structure any) (ret error) {
	defer func() {
		r := recover()
		if err, ok := r.(reflect.ValueError); ok {
			ret = fmt.Errorf("reflection error while decoding options: %v", err.Error())
		} else if r != nil {
			panic(r)
		}
	}()

	value := reflect.Indirect(reflect.ValueOf(structure))
	if !value.CanAddr() {
		return fmt.Errorf("value is not addressable: %w", ErrDecodeOption)
	}

	m := make(map[string]reflect.Value, value.NumField())
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		tfield := value.Type().Field(i)
		option := tfield.Tag.Get("option")
		if option == "" {
			continue
		}

		if !field.CanSet() {
			return fmt.Errorf("field %q cannot be set: %w", tfield.Name, ErrDecodeOption)
		}
		m[option] = field
	}

	for _, option := range options {
		field, ok := m[option.Name]
		if !ok {
			return fmt.Errorf("unexpected option name %q: %w", option.Name, ErrDecodeOption)
		}

		if field.Kind() == reflect.Pointer {
			ptr := reflect.New(field.Type().Elem())
			field.Set(ptr)

			field = ptr.Elem()
		}
		if field.Kind() == reflect.Struct && fieldTypes[field.Type()] {
			backing := field.FieldByName("Value")
			backing.Set(reflect.Zero(backing.Type()))
			focused := field.FieldByName("Focused")
			focused.SetBool(option.Focused)

			field = backing
		}

		switch option.Type {
		case discordgo.ApplicationCommandOptionString:
			if field.Kind() == reflect.String {
				field.SetString(option.StringValue())
				continue
			}
		case discordgo.ApplicationCommandOptionInteger:
			if field.Kind() == reflect.Int {
				field.SetInt(option.IntValue())
				continue
			}
		case discordgo.ApplicationCommandOptionBoolean:
			if field.Kind() == reflect.Bool {
				field.SetBool(option.BoolValue())
				continue
			}
		case discordgo.ApplicationCommandOptionSubCommand:
			if field.Kind() == reflect.Struct {
				err := decodeOptions(option.Options, field.Addr().Interface())
				if err != nil {
					return fmt.Errorf("error while decoding options for subcommand %q: %w", option.Name, err)
				}

				continue
			}
		default:
			return fmt.Errorf("unsupported type %q for option %q: %w", option.Type, option.Name, ErrDecodeOption)
		}
		return fmt.Errorf("unexpected type %q for option %q: %w", option.Type, option.Name, ErrDecodeOption)
	}

	return nil
}

var ErrEncodeOptions = errors.New("error while encoding options")

type encoder struct {
	Writer io.Writer
}

func (e *encoder) encode(structure any) error {
	value := reflect.ValueOf(structure)
	switch value.Kind() {
	case reflect.Int:
		err := binary.Write(e.Writer, binary.BigEndian, int32(value.Int()))
		if err != nil {
			return fmt.Errorf("failed to write int value: %w", err)
		}
	case reflect.Bool:
		err := binary.Write(e.Writer, binary.BigEndian, value.Bool())
		if err != nil {
			return fmt.Errorf("failed to write boolean value: %w", err)
		}
	case reflect.String:
		b := []byte(value.String())
		err := binary.Write(e.Writer, binary.BigEndian, uint8(len(b)))
		if err != nil {
			return fmt.Errorf("failed to write length for string value: %w", err)
		}

		_, err = e.Writer.Write(b)
		if err != nil {
			return fmt.Errorf("failed to write string value: %w", err)
		}
	case reflect.Pointer:
		if value.IsNil() {
			err := binary.Write(e.Writer, binary.BigEndian, false)
			if err != nil {
				return fmt.Errorf("failed to write nil marker for pointer: %w", err)
			}
		} else {
			err := binary.Write(e.Writer, binary.BigEndian, true)
			if err != nil {
				return fmt.Errorf("failed to write non-nil marker for pointer: %w", err)
			}

			err = e.encode(value.Elem().Interface())
			if err != nil {
				return fmt.Errorf("error while encoding element for pointer: %w", err)
			}
		}
	case reflect.Struct:
		for i := 0; i < value.NumField(); i++ {
			field := value.Field(i)
			err := e.encode(field.Interface())
			if err != nil {
				return fmt.Errorf("error while encoding field for struct: %w", err)
			}
		}
	default:
		return fmt.Errorf("unsupported type in options: %w", ErrEncodeOptions)
	}

	return nil
}

func marshal(structure any) (string, error) {
	var buf bytes.Buffer
	enc := encoder{&buf}
	err := enc.encode(structure)
	if err != nil {
		return "", fmt.Errorf("failed to marshall structure: %w", err)
	}

	return buf.String(), nil
}

type decoder struct {
	Reader io.Reader
}

func (d *decoder) decodeValue(value reflect.Value) error {
	if !value.CanSet() {
		return fmt.Errorf("cannot set fields for value of type %q: %w", value.Type().String(), ErrDecodeOption)
	}

	switch value.Kind() {
	case reflect.Int:
		var v int32
		err := binary.Read(d.Reader, binary.BigEndian, &v)
		if err != nil {
			return fmt.Errorf("failed to read int value: %w", err)
		}

		value.SetInt(int64(v))
	case reflect.Bool:
		var v bool
		err := binary.Read(d.Reader, binary.BigEndian, &v)
		if err != nil {
			return fmt.Errorf("failed to read boolean value: %w", err)
		}

		value.SetBool(v)
	case reflect.String:
		var l uint8
		err := binary.Read(d.Reader, binary.BigEndian, &l)
		if err != nil {
			return fmt.Errorf("failed to read length for string value: %w", err)
		}

		buf := make([]byte, l)
		_, err = io.ReadFull(d.Reader, buf)
		if err != nil {
			return fmt.Errorf("failed to read string value: %w", err)
		}

		value.SetString(string(buf))
	case reflect.Pointer:
		var f bool
		err := binary.Read(d.Reader, binary.BigEndian, &f)
		if err != nil {
			return fmt.Errorf("failed to check if pointer is nil: %w", err)
		}

		if f {
			ptr := reflect.New(value.Type().Elem())
			value.Set(ptr)
			err := d.decodeValue(ptr.Elem())
			if err != nil {
				return fmt.Errorf("error while decoding options for pointer element: %w", err)
			}
		} else {
			value.Set(reflect.Zero(value.Type()))
		}
	case reflect.Struct:
		for i := 0; i < value.NumField(); i++ {
			field := value.Field(i)
			err := d.decodeValue(field)
			if err != nil {
				return fmt.Errorf("error while decoding options for struct field: %w", err)
			}
		}
	default:
		return fmt.Errorf("unsupported type in options: %w", ErrDecodeOption)
	}

	return nil
}

func (d *decoder) decode(pointer any) error {
	value := reflect.ValueOf(pointer)
	if value.Kind() != reflect.Pointer && value.Type().Elem().Kind() != reflect.Struct {
		return fmt.Errorf("attempted decode into non-pointer field: %w", ErrDecodeOption)
	}

	return d.decodeValue(value.Elem())
}

func unmarshal[T any](reader io.Reader) (*T, error) {
	var structure T
	dec := decoder{Reader: reader}
	err := dec.decode(&structure)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return &structure, nil
}
