package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arcanaland/cardkeeper/internal/card"
	"github.com/arcanaland/cardkeeper/internal/export"
	"github.com/arcanaland/cardkeeper/internal/player"
)

func (s *Session) printMenu() {
	fmt.Fprintln(s.out, "Application de gestion de cartes de baseball")
	fmt.Fprintln(s.out, " ")
	fmt.Fprintln(s.out, "Voici la liste d'opérations valides :")
	fmt.Fprintln(s.out, "1. Ajouter un joueur")
	fmt.Fprintln(s.out, "2. Afficher l'information d'un joueur")
	fmt.Fprintln(s.out, "3. Mise à jour de l'information d'un joueur")
	fmt.Fprintln(s.out, "4. Effacer l'information d'un joueur")
	fmt.Fprintln(s.out, "5. Liste des joueurs")
	fmt.Fprintln(s.out, "6. Sauvegarde")
	fmt.Fprintln(s.out, " ")
	fmt.Fprintln(s.out, "0. Sortir")
	fmt.Fprint(s.out, "Votre sélection : ")
}

// dispatch runs a menu option. Unknown options do nothing.
func (s *Session) dispatch(option int) error {
	switch option {
	case 1:
		return s.addPlayer()
	case 2:
		fmt.Fprintln(s.out, "Option sélectionnée : 2. Afficher l'information d'un joueur")
		_, err := s.showPlayer()
		return err
	case 3:
		return s.updatePlayer()
	case 4:
		return s.deletePlayer()
	case 5:
		return s.listPlayers()
	case 6:
		// A failed save was already reported; the session keeps going.
		_ = s.save()
	}
	return nil
}

func (s *Session) addPlayer() error {
	fmt.Fprintln(s.out, "Option sélectionnée : 1. Ajouter un joueur")
	fmt.Fprintln(s.out, " ")

	key, err := s.prompt("Entrez la clé d'identification du joueur :")
	if err != nil {
		return err
	}
	name, err := s.prompt("Entrez le nom du joueur :")
	if err != nil {
		return err
	}

	p, err := player.New(key, name)
	if err != nil {
		s.report(err)
		return nil
	}
	if err := s.store.Insert(p); err != nil {
		s.report(err)
		return nil
	}

	ok, err := s.promptCards(p, "Combien de cartes? :")
	if err != nil || !ok {
		return err
	}
	fmt.Fprintln(s.out, "L'enregistrement du joueur a réussi.")
	return nil
}

// promptCards asks how many cards to add to p, then reads each card. It
// reports false when the input was rejected; cards read before the rejection
// stay on the player.
func (s *Session) promptCards(p *player.Player, question string) (bool, error) {
	answer, err := s.prompt(question)
	if err != nil {
		return false, err
	}
	count, err := parseInt(answer)
	if err != nil {
		s.invalidFormat()
		return false, nil
	}

	for i := 1; i <= count; i++ {
		title, err := s.prompt(fmt.Sprintf("Entrez le titre de la carte %d :", i))
		if err != nil {
			return false, err
		}
		team, err := s.prompt(fmt.Sprintf("Entrez l’équipe de la carte %d :", i))
		if err != nil {
			return false, err
		}
		yearText, err := s.prompt(fmt.Sprintf("Entrez l’année de parution de la carte %d :", i))
		if err != nil {
			return false, err
		}
		year, err := parseInt(yearText)
		if err != nil {
			s.invalidFormat()
			return false, nil
		}

		c, err := card.New(title, team, year)
		if err != nil {
			s.report(err)
			return false, nil
		}
		p.AddCard(c)
	}
	return true, nil
}

// showPlayer asks for a key and prints the matching player. It returns nil
// when the player does not exist.
func (s *Session) showPlayer() (*player.Player, error) {
	fmt.Fprintln(s.out, " ")
	key, err := s.prompt("Entrez la clé d'identification du joueur:")
	if err != nil {
		return nil, err
	}

	p, err := s.store.FindByKey(key)
	if err != nil {
		fmt.Fprintln(s.out, "Le joueur n'existe pas")
		return nil, nil
	}
	s.printer.PlayerDetails(p)
	return p, nil
}

func (s *Session) updatePlayer() error {
	fmt.Fprintln(s.out, "Option sélectionnée : 3. Mise à jour de l'information d'un joueur")

	p, err := s.showPlayer()
	if err != nil || p == nil {
		return err
	}

	fmt.Fprintln(s.out, " ")
	fmt.Fprintln(s.out, "Maintenant entrée les données à modifier:")
	name, err := s.prompt("Entrez le nom du joueur:")
	if err != nil {
		return err
	}
	if err := s.store.Rename(p.Key(), name); err != nil {
		s.report(err)
		return nil
	}

	_, err = s.promptCards(p, "Combien de cartes:")
	return err
}

func (s *Session) deletePlayer() error {
	fmt.Fprintln(s.out, "Option sélectionnée : 4. Effacer l'information d'un joueur")

	p, err := s.showPlayer()
	if err != nil || p == nil {
		return err
	}

	answer, err := s.prompt("Voulez vous effacer l'information de ce joueur ? (O/N)")
	if err != nil {
		return err
	}
	if answer != "O" && answer != "o" {
		fmt.Fprintf(s.out, "L'information du joueur %s n'a pas été efface du système.\n", p.Name())
		return nil
	}

	if err := s.store.RemoveByKey(p.Key()); err != nil {
		s.report(err)
		return nil
	}
	fmt.Fprintf(s.out, "L'information du joueur %s a été efface du système.\n", p.Name())
	return nil
}

func (s *Session) listPlayers() error {
	fmt.Fprint(s.out, "Option sélectionnée : 5. Liste de joueurs \n\n")

	answer, err := s.prompt("Voulez-vous creer la liste des joueurs dans un fichier ou l'afficher sur l'ecran ? (F/E): ")
	if err != nil {
		return err
	}

	switch answer {
	case "E":
		for _, p := range s.store.Players() {
			s.printer.PlayerEntry(p)
		}
	case "F":
		dest, err := s.prompt("Entrez le nom du fichier : ")
		if err != nil {
			return err
		}
		if strings.TrimSpace(dest) == "" {
			s.report(errors.New("invalid export file name"))
			return nil
		}
		if err := s.Export(context.Background(), dest, export.FormatText); err != nil {
			s.report(err)
			return nil
		}
		fmt.Fprintf(s.out, "Liste des joueurs à l'endroit suivant : %s\n", dest)
	default:
		fmt.Fprintln(s.out, "Choix invalide, veuillez entrée E ou F")
	}
	return nil
}

func parseInt(text string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(text))
}
