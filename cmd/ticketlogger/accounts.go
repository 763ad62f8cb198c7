package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/service"
)

func usersCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Gestión de cuentas",
	}

	var listReq repository.PageRequest
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar usuarios con sus role ids",
		RunE: func(c *cobra.Command, args []string) error {
			page, err := (*a).users.List(c.Context(), listReq)
			if err != nil {
				return err
			}
			// El hash nunca sale por consola.
			for i := range page.Items {
				page.Items[i].PasswordHash = ""
			}
			return printJSON(page)
		},
	}
	pageFlags(list, &listReq)

	var getID int64
	get := &cobra.Command{
		Use:   "get",
		Short: "Mostrar un usuario por id",
		RunE: func(c *cobra.Command, args []string) error {
			u, err := (*a).users.Get(c.Context(), getID)
			if err != nil {
				return err
			}
			u.PasswordHash = ""
			return printJSON(u)
		},
	}
	get.Flags().Int64Var(&getID, "id", 0, "Id del usuario")
	_ = get.MarkFlagRequired("id")

	var createIn repository.CreateUserInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Crear un usuario (la contraseña se guarda como hash PHC)",
		RunE: func(c *cobra.Command, args []string) error {
			id, err := (*a).users.Create(c.Context(), createIn)
			if err != nil {
				return err
			}
			return printJSON(map[string]int64{"id": id})
		},
	}
	create.Flags().StringVar(&createIn.Email, "email", "", "Email (clave natural)")
	create.Flags().StringVar(&createIn.Password, "password", "", "Contraseña en claro")
	create.Flags().BoolVar(&createIn.Active, "active", false, "Cuenta activa")
	create.Flags().BoolVar(&createIn.EmailVerified, "verified", false, "Email verificado")
	create.Flags().Int64SliceVar(&createIn.RoleIDs, "roles", nil, "Role ids a asignar")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	var (
		updateID     int64
		updateEmail  string
		updateActive string // "", "true", "false"
		updateRoles  []int64
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "Actualizar campos sueltos de un usuario",
		RunE: func(c *cobra.Command, args []string) error {
			var in repository.UpdateUserInput
			if c.Flags().Changed("email") {
				in.Email = &updateEmail
			}
			if c.Flags().Changed("active") {
				b := strings.EqualFold(updateActive, "true")
				in.Active = &b
			}
			if c.Flags().Changed("roles") {
				in.RoleIDs = updateRoles
			}
			return (*a).users.Update(c.Context(), updateID, in)
		},
	}
	update.Flags().Int64Var(&updateID, "id", 0, "Id del usuario")
	update.Flags().StringVar(&updateEmail, "email", "", "Nuevo email")
	update.Flags().StringVar(&updateActive, "active", "", "true|false")
	update.Flags().Int64SliceVar(&updateRoles, "roles", nil, "Conjunto de roles de reemplazo")
	_ = update.MarkFlagRequired("id")

	var passID int64
	var passValue string
	passwd := &cobra.Command{
		Use:   "passwd",
		Short: "Cambiar la contraseña (reinicia la ventana de caducidad)",
		RunE: func(c *cobra.Command, args []string) error {
			return (*a).users.ChangePassword(c.Context(), passID, passValue)
		},
	}
	passwd.Flags().Int64Var(&passID, "id", 0, "Id del usuario")
	passwd.Flags().StringVar(&passValue, "password", "", "Nueva contraseña en claro")
	_ = passwd.MarkFlagRequired("id")
	_ = passwd.MarkFlagRequired("password")

	var deleteID int64
	del := &cobra.Command{
		Use:   "delete",
		Short: "Eliminar un usuario (su perfil cae en cascada)",
		RunE: func(c *cobra.Command, args []string) error {
			return (*a).users.Delete(c.Context(), deleteID)
		},
	}
	del.Flags().Int64Var(&deleteID, "id", 0, "Id del usuario")
	_ = del.MarkFlagRequired("id")

	cmd.AddCommand(list, get, create, update, passwd, del)
	return cmd
}

func rolesCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "Listar los roles disponibles",
		RunE: func(c *cobra.Command, args []string) error {
			roles, err := (*a).roles.List(c.Context())
			if err != nil {
				return err
			}
			return printJSON(roles)
		},
	}
}

func profileCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Gestión del perfil de un usuario",
	}

	var showID int64
	show := &cobra.Command{
		Use:   "show",
		Short: "Mostrar el perfil",
		RunE: func(c *cobra.Command, args []string) error {
			p, err := (*a).profiles.Get(c.Context(), showID)
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	}
	show.Flags().Int64Var(&showID, "user-id", 0, "Id del usuario")
	_ = show.MarkFlagRequired("user-id")

	var (
		setID            int64
		setIn            repository.UpsertProfileInput
		setPhone, setBio string
		setLocaleStr     string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Crear o actualizar los datos del perfil",
		RunE: func(c *cobra.Command, args []string) error {
			if c.Flags().Changed("phone") {
				setIn.PhoneNumber = &setPhone
			}
			if c.Flags().Changed("bio") {
				setIn.Bio = &setBio
			}
			if c.Flags().Changed("locale") {
				setIn.Locale = &setLocaleStr
			}
			return (*a).profiles.Upsert(c.Context(), setID, setIn)
		},
	}
	set.Flags().Int64Var(&setID, "user-id", 0, "Id del usuario")
	set.Flags().StringVar(&setIn.FirstName, "first-name", "", "Nombre")
	set.Flags().StringVar(&setIn.LastName, "last-name", "", "Apellidos")
	set.Flags().StringVar(&setPhone, "phone", "", "Teléfono")
	set.Flags().StringVar(&setBio, "bio", "", "Bio")
	set.Flags().StringVar(&setLocaleStr, "locale", "", "Locale (ej. es-ES)")
	_ = set.MarkFlagRequired("user-id")
	_ = set.MarkFlagRequired("first-name")
	_ = set.MarkFlagRequired("last-name")

	var imgID int64
	var imgFile string
	setImage := &cobra.Command{
		Use:   "set-image",
		Short: "Adjuntar o sustituir la imagen del perfil",
		RunE: func(c *cobra.Command, args []string) error {
			data, err := os.ReadFile(imgFile)
			if err != nil {
				return err
			}
			ct := mime.TypeByExtension(filepath.Ext(imgFile))
			if ct == "" {
				return fmt.Errorf("no se pudo deducir el content type de %s", imgFile)
			}
			webPath, err := (*a).profiles.SetImage(c.Context(), imgID, service.Upload{
				Data:         data,
				ContentType:  ct,
				DeclaredSize: int64(len(data)),
				Filename:     filepath.Base(imgFile),
			})
			if err != nil {
				return err
			}
			return printJSON(map[string]string{"profileImage": webPath})
		},
	}
	setImage.Flags().Int64Var(&imgID, "user-id", 0, "Id del usuario")
	setImage.Flags().StringVar(&imgFile, "file", "", "Ruta del archivo de imagen")
	_ = setImage.MarkFlagRequired("user-id")
	_ = setImage.MarkFlagRequired("file")

	var rmID int64
	removeImage := &cobra.Command{
		Use:   "remove-image",
		Short: "Quitar la imagen del perfil",
		RunE: func(c *cobra.Command, args []string) error {
			return (*a).profiles.RemoveImage(c.Context(), rmID)
		},
	}
	removeImage.Flags().Int64Var(&rmID, "user-id", 0, "Id del usuario")
	_ = removeImage.MarkFlagRequired("user-id")

	cmd.AddCommand(show, set, setImage, removeImage)
	return cmd
}
